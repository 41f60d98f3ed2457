package services

import (
	"context"
	"time"

	"cryptodash/src/clients/marketdata"
	"cryptodash/src/models"
	"cryptodash/src/repositories"
	"cryptodash/src/schemas"
	"cryptodash/src/utils"
	redis_utils "cryptodash/src/utils/redis"

	"github.com/sirupsen/logrus"
)

const rankingCacheKey = "crypto:ranking"

type CryptoServiceI interface {
	GetRanking(ctx context.Context, limit int) ([]schemas.PriceRanking, error)
	GetQuote(ctx context.Context, symbol string) (*schemas.PriceRanking, error)
	RefreshFromProvider(ctx context.Context, limit int) error
}

// CryptoService serves the price ranking from a process-local cache when
// fresh, then redis, then the database, and refreshes all three from the
// market data provider.
type CryptoService struct {
	client   marketdata.MarketDataClientI
	cryptos  repositories.CryptoRepository
	redis    *redis_utils.RedisHandler
	local    *utils.Cache[[]schemas.PriceRanking]
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewCryptoService(client marketdata.MarketDataClientI, cryptos repositories.CryptoRepository, redis *redis_utils.RedisHandler, cacheTTL time.Duration, logger *logrus.Logger) *CryptoService {
	return &CryptoService{
		client:   client,
		cryptos:  cryptos,
		redis:    redis,
		local:    utils.NewCache[[]schemas.PriceRanking](),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *CryptoService) GetRanking(ctx context.Context, limit int) ([]schemas.PriceRanking, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if cached, ok := s.local.Get(); ok && len(cached) > 0 {
		if limit < len(cached) {
			cached = cached[:limit]
		}
		return cached, nil
	}

	if s.redis != nil {
		var cached []schemas.PriceRanking
		if err := s.redis.Get(rankingCacheKey, &cached); err == nil && len(cached) > 0 {
			s.local.Set(cached, s.cacheTTL)
			if limit < len(cached) {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	cryptos, err := s.cryptos.GetTop(ctx, limit)
	if err != nil {
		return nil, err
	}
	ranking := make([]schemas.PriceRanking, 0, len(cryptos))
	for _, c := range cryptos {
		ranking = append(ranking, toRanking(c))
	}
	return ranking, nil
}

func (s *CryptoService) GetQuote(ctx context.Context, symbol string) (*schemas.PriceRanking, error) {
	c, err := s.cryptos.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.NotFound("unknown symbol: " + symbol)
	}
	ranking := toRanking(*c)
	return &ranking, nil
}

// RefreshFromProvider pulls the latest ranking from the provider and
// persists it. When the provider is unreachable and the database is still
// empty, the embedded seed ranking is loaded instead so a fresh install has
// something to show; the substitution is logged as a fallback.
func (s *CryptoService) RefreshFromProvider(ctx context.Context, limit int) error {
	quotes, err := s.client.GetRanking(ctx, limit)
	if err != nil {
		existing, dbErr := s.cryptos.GetTop(ctx, 1)
		if dbErr != nil {
			return dbErr
		}
		if len(existing) > 0 {
			// Keep the last persisted quotes; next refresh is the retry.
			s.logger.WithError(err).Warn("market data refresh failed, keeping stored quotes")
			return err
		}
		s.logger.WithError(err).Warn("market data refresh failed, loading embedded seed ranking (fallback data)")
		quotes = seedRanking
	}

	cryptos := make([]models.Cryptocurrency, 0, len(quotes))
	ranking := make([]schemas.PriceRanking, 0, len(quotes))
	for _, quote := range quotes {
		cryptos = append(cryptos, models.Cryptocurrency{
			Symbol:        quote.Symbol,
			Name:          quote.Name,
			Price:         quote.Price,
			PriceCurrency: quote.PriceCurrency,
			MarketCap:     quote.MarketCap,
			Change24h:     quote.Change24h,
			Volume24h:     quote.Volume24h,
		})
		ranking = append(ranking, schemas.PriceRanking{
			Symbol:    quote.Symbol,
			Name:      quote.Name,
			Price:     quote.Price,
			Change24h: quote.Change24h,
			Volume24h: quote.Volume24h,
			MarketCap: quote.MarketCap,
		})
	}

	if err := s.cryptos.UpsertAll(ctx, cryptos); err != nil {
		return err
	}
	s.local.Set(ranking, s.cacheTTL)
	if s.redis != nil {
		if err := s.redis.Set(rankingCacheKey, ranking, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("failed to cache price ranking")
		}
	}
	return nil
}

// CacheQuotes mirrors a freshly polled quote set into the local and redis
// caches without touching the database. The TTL spans two poll intervals so
// the API keeps serving prices across a single missed poll.
func (s *CryptoService) CacheQuotes(quotes []marketdata.Quote) {
	if len(quotes) == 0 {
		return
	}
	ranking := make([]schemas.PriceRanking, 0, len(quotes))
	for _, quote := range quotes {
		ranking = append(ranking, schemas.PriceRanking{
			Symbol:    quote.Symbol,
			Name:      quote.Name,
			Price:     quote.Price,
			Change24h: quote.Change24h,
			Volume24h: quote.Volume24h,
			MarketCap: quote.MarketCap,
		})
	}

	ttl := 2 * s.cacheTTL
	s.local.Set(ranking, ttl)
	if s.redis != nil {
		if err := s.redis.Set(rankingCacheKey, ranking, ttl); err != nil {
			s.logger.WithError(err).Warn("failed to mirror price snapshot to redis")
		}
	}
}

func toRanking(c models.Cryptocurrency) schemas.PriceRanking {
	return schemas.PriceRanking{
		Symbol:    c.Symbol,
		Name:      c.Name,
		Price:     c.Price,
		Change24h: c.Change24h,
		Volume24h: c.Volume24h,
		MarketCap: c.MarketCap,
	}
}
