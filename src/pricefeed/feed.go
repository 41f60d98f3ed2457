package pricefeed

import (
	"context"
	"sync"
	"time"

	"cryptodash/src/clients/marketdata"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Snapshot is the complete set of latest prices keyed by symbol. It is
// replaced wholesale on every successful poll; consumers always receive
// copies.
type Snapshot map[string]decimal.Decimal

// Feed polls the market data provider on a fixed interval and keeps the
// latest good snapshot. A failed fetch leaves the previous snapshot in place;
// the next scheduled tick is the retry.
type Feed struct {
	client   marketdata.MarketDataClientI
	interval time.Duration
	limit    int
	logger   *logrus.Logger

	mu       sync.RWMutex
	snapshot Snapshot

	onQuotes func([]marketdata.Quote)

	updates chan Snapshot
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewFeed(client marketdata.MarketDataClientI, interval time.Duration, limit int, logger *logrus.Logger) *Feed {
	return &Feed{
		client:   client,
		interval: interval,
		limit:    limit,
		logger:   logger,
		snapshot: Snapshot{},
		updates:  make(chan Snapshot, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// OnQuotes registers a sink that receives the full quote rows of every
// successful poll, before the snapshot is published. Must be set before
// Start.
func (f *Feed) OnQuotes(fn func([]marketdata.Quote)) {
	f.onQuotes = fn
}

// Start launches the polling goroutine: one immediate fetch, then one fetch
// per interval until Stop is called or ctx is cancelled.
func (f *Feed) Start(ctx context.Context) {
	go func() {
		defer close(f.done)

		f.poll(ctx)

		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-f.stop:
				return
			case <-ticker.C:
				f.poll(ctx)
			}
		}
	}()
}

// Stop ends the polling goroutine and waits for it to exit. No updates are
// emitted after Stop returns.
func (f *Feed) Stop() {
	f.once.Do(func() { close(f.stop) })
	<-f.done
}

// Snapshot returns a copy of the latest price snapshot. The copy may be
// empty if no poll has succeeded yet.
func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	copied := make(Snapshot, len(f.snapshot))
	for symbol, price := range f.snapshot {
		copied[symbol] = price
	}
	return copied
}

// Updates exposes the snapshot stream for the valuation pipeline. The
// channel holds at most the latest snapshot; a slow consumer sees only the
// most recent one.
func (f *Feed) Updates() <-chan Snapshot {
	return f.updates
}

func (f *Feed) poll(ctx context.Context) {
	quotes, err := f.client.GetRanking(ctx, f.limit)
	if err != nil {
		// Keep the previous snapshot; log and wait for the next tick.
		f.logger.WithError(err).Warn("price feed fetch failed, keeping last snapshot")
		return
	}

	if f.onQuotes != nil {
		f.onQuotes(quotes)
	}

	next := make(Snapshot, len(quotes))
	for _, q := range quotes {
		next[q.Symbol] = q.Price
	}

	f.mu.Lock()
	f.snapshot = next
	f.mu.Unlock()

	f.publish(f.Snapshot())
}

func (f *Feed) publish(s Snapshot) {
	select {
	case <-f.stop:
		return
	default:
	}

	// Replace a pending snapshot rather than blocking the poll loop.
	select {
	case f.updates <- s:
	default:
		select {
		case <-f.updates:
		default:
		}
		select {
		case f.updates <- s:
		default:
		}
	}
}
