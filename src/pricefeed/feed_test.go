package pricefeed_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cryptodash/src/clients/marketdata"
	"cryptodash/src/pricefeed"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarketClient struct {
	mu     sync.Mutex
	quotes []marketdata.Quote
	err    error
	calls  int
}

func (f *fakeMarketClient) GetRanking(_ context.Context, _ int) ([]marketdata.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func (f *fakeMarketClient) GetQuote(_ context.Context, symbol string) (*marketdata.Quote, error) {
	for _, q := range f.quotes {
		if q.Symbol == symbol {
			return &q, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeMarketClient) set(quotes []marketdata.Quote, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes = quotes
	f.err = err
}

func (f *fakeMarketClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func btcQuote(price string) marketdata.Quote {
	return marketdata.Quote{
		Symbol: "BTC",
		Name:   "Bitcoin",
		Price:  decimal.RequireFromString(price),
	}
}

func waitForUpdate(t *testing.T, feed *pricefeed.Feed) pricefeed.Snapshot {
	t.Helper()
	select {
	case snapshot := <-feed.Updates():
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot published in time")
		return nil
	}
}

func TestFeedFetchesImmediatelyOnStart(t *testing.T) {
	client := &fakeMarketClient{}
	client.set([]marketdata.Quote{btcQuote("65000")}, nil)

	feed := pricefeed.NewFeed(client, time.Hour, 50, quietLogger())
	feed.Start(context.Background())
	defer feed.Stop()

	snapshot := waitForUpdate(t, feed)
	require.Contains(t, snapshot, "BTC")
	assert.True(t, snapshot["BTC"].Equal(decimal.RequireFromString("65000")))
	assert.Equal(t, 1, client.callCount())
}

func TestFeedReplacesSnapshotWholesale(t *testing.T) {
	client := &fakeMarketClient{}
	client.set([]marketdata.Quote{btcQuote("65000"), {Symbol: "ETH", Price: decimal.NewFromInt(3500)}}, nil)

	feed := pricefeed.NewFeed(client, 20*time.Millisecond, 50, quietLogger())
	feed.Start(context.Background())
	defer feed.Stop()

	first := waitForUpdate(t, feed)
	require.Contains(t, first, "ETH")

	// ETH disappears from the next poll; the snapshot must not retain it.
	client.set([]marketdata.Quote{btcQuote("66000")}, nil)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snapshot := <-feed.Updates():
			if _, ok := snapshot["ETH"]; !ok {
				assert.True(t, snapshot["BTC"].Equal(decimal.RequireFromString("66000")))
				return
			}
		case <-deadline:
			t.Fatal("snapshot still contains stale symbol")
		}
	}
}

func TestFeedKeepsLastSnapshotOnFailure(t *testing.T) {
	client := &fakeMarketClient{}
	client.set([]marketdata.Quote{btcQuote("65000")}, nil)

	feed := pricefeed.NewFeed(client, 20*time.Millisecond, 50, quietLogger())
	feed.Start(context.Background())
	defer feed.Stop()

	waitForUpdate(t, feed)
	client.set(nil, errors.New("provider down"))

	// Let several failing polls happen.
	start := client.callCount()
	for client.callCount() < start+3 {
		time.Sleep(10 * time.Millisecond)
	}

	snapshot := feed.Snapshot()
	require.Contains(t, snapshot, "BTC")
	assert.True(t, snapshot["BTC"].Equal(decimal.RequireFromString("65000")))
}

func TestFeedStopEndsPolling(t *testing.T) {
	client := &fakeMarketClient{}
	client.set([]marketdata.Quote{btcQuote("65000")}, nil)

	feed := pricefeed.NewFeed(client, 10*time.Millisecond, 50, quietLogger())
	feed.Start(context.Background())

	waitForUpdate(t, feed)
	feed.Stop()

	calls := client.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, client.callCount())
}

func TestFeedSnapshotReturnsCopy(t *testing.T) {
	client := &fakeMarketClient{}
	client.set([]marketdata.Quote{btcQuote("65000")}, nil)

	feed := pricefeed.NewFeed(client, time.Hour, 50, quietLogger())
	feed.Start(context.Background())
	defer feed.Stop()

	waitForUpdate(t, feed)

	copied := feed.Snapshot()
	copied["BTC"] = decimal.Zero

	fresh := feed.Snapshot()
	assert.True(t, fresh["BTC"].Equal(decimal.RequireFromString("65000")))
}
