package api

import (
	"net/http"
	"time"

	"cryptodash/src/api/handlers"
	"cryptodash/src/clients/marketdata"
	"cryptodash/src/config"
	"cryptodash/src/database"
	"cryptodash/src/repositories"
	"cryptodash/src/services"
	"cryptodash/src/utils"
	redis_utils "cryptodash/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router    *chi.Mux
	Handler   handlers.Handler
	tokenAuth *jwtauth.JWTAuth
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

	users := repositories.NewUserRepository(pool)
	assets := repositories.NewAssetRepository(pool)
	history := repositories.NewAssetHistoryRepository(pool)
	cryptos := repositories.NewCryptoRepository(pool)
	messages := repositories.NewMessageRepository(pool)
	reports := repositories.NewReportRepository(pool)
	logs := repositories.NewOperationLogRepository(pool)
	settings := repositories.NewSettingsRepository(pool)

	marketClient := marketdata.NewClient(cfg)
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	authService := services.NewAuthService(users, logs, cfg.Auth.JWTSecret, tokenTTL)

	handler := handlers.Handler{
		Auth:      authService,
		Assets:    services.NewAssetService(assets, history),
		Valuation: services.NewValuationService(cfg.Service.DemoFallback),
		Sync:      services.NewSyncService(assets, logger),
		Crypto:    services.NewCryptoService(marketClient, cryptos, redisHandler, time.Duration(cfg.ExternalClients.MarketData.PollIntervalSeconds)*time.Second, logger),
		Dashboard: services.NewDashboardService(assets, messages, reports),
		Messages:  services.NewMessageService(messages),
		Reports:   services.NewReportService(reports, logs),
		Admin:     services.NewAdminService(users, logs, settings),
		Export:    services.NewExportService(),
		Logger:    logger,
	}

	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   handler,
		tokenAuth: authService.TokenAuth(),
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler)

	s.Router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(utils.WithLogger(r.Context(), s.Handler.Logger)))
		})
	})

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Post("/api/auth/login", s.Handler.Login)

	// Everything below requires a verified token.
	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Post("/api/auth/logout", s.Handler.Logout)

		r.Route("/api/assets", func(r chi.Router) {
			r.Get("/", s.Handler.GetAssets)
			r.Post("/", s.Handler.CreateAsset)
			r.Put("/{id}", s.Handler.UpdateAsset)
			r.Delete("/{id}", s.Handler.DeleteAsset)
			r.Get("/history", s.Handler.GetAssetHistory)
			r.Get("/export", s.Handler.ExportAssets)
		})

		r.Route("/api/crypto/prices", func(r chi.Router) {
			r.Get("/", s.Handler.GetPriceRanking)
			r.Get("/{symbol}", s.Handler.GetQuote)
		})

		r.Get("/api/dashboard/stats", s.Handler.GetDashboardStats)

		r.Route("/api/messages", func(r chi.Router) {
			r.Get("/", s.Handler.GetMessages)
			r.Put("/{id}/read", s.Handler.MarkMessageRead)
			r.Post("/", s.Handler.PublishMessage)
		})

		r.Route("/api/reports", func(r chi.Router) {
			r.Get("/", s.Handler.GetReports)
			r.Post("/", s.Handler.SubmitReport)
			r.Put("/{id}/approve", s.Handler.ApproveReport)
			r.Put("/{id}/reject", s.Handler.RejectReport)
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Get("/users", s.Handler.ListUsers)
			r.Post("/users", s.Handler.CreateUser)
			r.Put("/users/{id}", s.Handler.UpdateUser)
			r.Post("/users/{id}/reset-password", s.Handler.ResetUserPassword)
			r.Delete("/users/{id}", s.Handler.DeleteUser)
			r.Get("/logs", s.Handler.ListOperationLogs)
			r.Get("/settings", s.Handler.GetSettings)
			r.Put("/settings", s.Handler.PutSettings)
		})
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
