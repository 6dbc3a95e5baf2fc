package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"packaging/db"
	"packaging/db/migrations"
	"packaging/internal/cache"
	"packaging/internal/config"
	"packaging/internal/events"
	"packaging/internal/handlers"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	if cfg.PostgresConn == "" {
		log.Fatal().Msg("POSTGRES_CONN env variable is not set")
	}

	dbConn, err := sqlx.Connect("postgres", cfg.PostgresConn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to DB")
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn.DB); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	store := db.NewStorage(dbConn)
	if cfg.SeedDemoData {
		if err := store.SeedDemoUsers(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("seeding demo users failed")
		}
		log.Info().Msg("demo users seeded")
	}

	producer := events.NewProducer(cfg.KafkaBroker)
	defer producer.Close()

	h := handlers.NewHandler(store)
	h.Cache = cache.New(cfg.RedisAddr, cfg.CacheTTL)
	h.Events = producer
	h.SessionTTL = cfg.SessionTTL

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(handlers.RequestLogger(log.Logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)
		// auth
		r.Post("/auth/login", h.LoginHandler)
		r.Post("/auth/logout", h.LogoutHandler)
		r.Get("/auth/me", h.MeHandler)
		// directory and catalog
		r.Get("/users", h.GetUsersHandler)
		r.Get("/product-types", h.GetProductTypesHandler)
		r.Post("/product-types", h.CreateProductTypeHandler)
		// request ledger
		r.Get("/requests", h.GetRequestsHandler)
		r.Get("/requests/enriched", h.GetEnrichedRequestsHandler)
		r.Get("/requests/{requestId}", h.GetRequestHandler)
		r.Post("/requests", h.CreateRequestHandler)
		r.Patch("/requests/interest", h.UpdateInterestHandler)
	})

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.ServerAddress).Msg("starting server")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
