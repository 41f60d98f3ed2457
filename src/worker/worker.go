package worker

import (
	"context"
	"net/http"
	"time"

	"cryptodash/src/api/handlers"
	"cryptodash/src/clients/marketdata"
	"cryptodash/src/config"
	"cryptodash/src/database"
	"cryptodash/src/models"
	"cryptodash/src/pricefeed"
	"cryptodash/src/repositories"
	"cryptodash/src/scheduler"
	"cryptodash/src/services"
	redis_utils "cryptodash/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	marketRefreshSpec = "*/5 * * * *"
	snapshotSpec      = "55 23 * * *"
	messageSpec       = "0 * * * *"
)

// Server runs the background pipeline: the price feed drives portfolio
// revaluation and write-back, and cron tasks handle market refresh, daily
// history snapshots and market announcements.
type Server struct {
	Router *chi.Mux

	cfg    *config.Config
	logger *logrus.Logger

	assets    repositories.AssetRepository
	assetSvc  *services.AssetService
	crypto    *services.CryptoService
	messages  *services.MessageService
	valuation *services.ValuationService
	sync      *services.SyncService
	feed      *pricefeed.Feed

	tasks  []*scheduler.ScheduledTask
	cancel context.CancelFunc
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	pool, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}
	redisHandler, err := redis_utils.NewRedisHandler(cfg)
	if err != nil {
		return nil, err
	}

	assets := repositories.NewAssetRepository(pool)
	history := repositories.NewAssetHistoryRepository(pool)
	cryptos := repositories.NewCryptoRepository(pool)
	messages := repositories.NewMessageRepository(pool)

	marketClient := marketdata.NewClient(cfg)
	pollInterval := time.Duration(cfg.ExternalClients.MarketData.PollIntervalSeconds) * time.Second

	server := &Server{
		Router:    chi.NewRouter(),
		cfg:       cfg,
		logger:    logger,
		assets:    assets,
		assetSvc:  services.NewAssetService(assets, history),
		crypto:    services.NewCryptoService(marketClient, cryptos, redisHandler, pollInterval, logger),
		messages:  services.NewMessageService(messages),
		valuation: services.NewValuationService(false),
		sync:      services.NewSyncService(assets, logger),
		feed:      pricefeed.NewFeed(marketClient, pollInterval, cfg.ExternalClients.MarketData.RankingLimit, logger),
	}
	// Mirror every good poll into the shared caches so the API process can
	// serve prices without polling the provider itself.
	server.feed.OnQuotes(server.crypto.CacheQuotes)
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
}

// Start launches the price feed, the revaluation loop and the cron tasks.
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.feed.Start(ctx)
	go s.revalueLoop(ctx)

	s.addTask(marketRefreshSpec, "market refresh", func() {
		taskCtx, taskCancel := context.WithTimeout(ctx, time.Minute)
		defer taskCancel()
		if err := s.crypto.RefreshFromProvider(taskCtx, s.cfg.ExternalClients.MarketData.RankingLimit); err != nil {
			s.logger.WithError(err).Warn("market refresh task failed")
		}
	})

	s.addTask(snapshotSpec, "daily valuation snapshot", func() {
		taskCtx, taskCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer taskCancel()
		s.snapshotAllUsers(taskCtx)
	})

	s.addTask(messageSpec, "market announcement", func() {
		taskCtx, taskCancel := context.WithTimeout(ctx, time.Minute)
		defer taskCancel()
		s.publishMarketMessage(taskCtx)
	})
}

// Stop cancels the pipeline and all scheduled tasks.
func (s *Server) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.feed.Stop()
	for _, task := range s.tasks {
		task.Cancel()
	}
}

func (s *Server) addTask(spec, name string, fn func()) {
	task, err := scheduler.NewScheduledTask(spec, fn)
	if err != nil {
		s.logger.WithError(err).Errorf("could not schedule %s task", name)
		return
	}
	s.tasks = append(s.tasks, task)
	s.logger.Infof("scheduled %s task (%s)", name, spec)
}

// revalueLoop consumes price snapshots and revalues every holder's portfolio.
// Write-backs are asynchronous; a slow database never stalls the feed.
func (s *Server) revalueLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-s.feed.Updates():
			if !ok {
				return
			}
			s.revalueAll(ctx, snapshot)
		}
	}
}

func (s *Server) revalueAll(ctx context.Context, snapshot pricefeed.Snapshot) {
	userIDs, err := s.assets.ListUserIDs(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("could not list asset holders")
		return
	}

	for _, userID := range userIDs {
		holdings, err := s.assets.GetByUserID(ctx, userID)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("could not load holdings")
			continue
		}
		result := s.valuation.Revalue(holdings, snapshot)
		s.sync.SyncBatchAsync(ctx, result)
	}
	s.logger.WithField("users", len(userIDs)).Debug("revalued portfolios from price snapshot")
}

// snapshotAllUsers persists today's valuation of every portfolio into the
// history table. Reruns on the same day overwrite rather than duplicate.
func (s *Server) snapshotAllUsers(ctx context.Context) {
	userIDs, err := s.assets.ListUserIDs(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("could not list asset holders for snapshot")
		return
	}

	snapshot := s.feed.Snapshot()
	now := time.Now()
	for _, userID := range userIDs {
		holdings, err := s.assets.GetByUserID(ctx, userID)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("could not load holdings for snapshot")
			continue
		}
		result := s.valuation.Revalue(holdings, snapshot)
		if err := s.assetSvc.SnapshotValuations(ctx, result, now); err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("could not persist valuation snapshot")
		}
	}
	s.logger.WithField("users", len(userIDs)).Info("persisted daily valuation snapshots")
}

// publishMarketMessage summarizes the current ranking into a broadcast
// message for all active users.
func (s *Server) publishMarketMessage(ctx context.Context) {
	ranking, err := s.crypto.GetRanking(ctx, 3)
	if err != nil || len(ranking) == 0 {
		s.logger.WithError(err).Warn("skipping market announcement, ranking unavailable")
		return
	}

	content := "Top movers: "
	for i, row := range ranking {
		if i > 0 {
			content += ", "
		}
		content += row.Symbol + " " + row.Price.StringFixed(2) + " (" + row.Change24h.StringFixed(2) + "%)"
	}

	msg := &models.Message{
		Title:   "Market update",
		Content: content,
		Source:  "market-feed",
	}
	if err := s.messages.Publish(ctx, msg); err != nil {
		s.logger.WithError(err).Warn("could not publish market announcement")
	}
}

func NewHTTPServer(server *Server, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
