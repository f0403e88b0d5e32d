package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resourcehub/internal/audit"
	"resourcehub/internal/auth/google"
	authhandler "resourcehub/internal/auth/handler"
	authservice "resourcehub/internal/auth/service"
	"resourcehub/internal/auth/store/revocation"
	userstore "resourcehub/internal/auth/store/user"
	cataloghandler "resourcehub/internal/catalog/handler"
	catalogservice "resourcehub/internal/catalog/service"
	catalogstore "resourcehub/internal/catalog/store"
	interactionhandler "resourcehub/internal/interaction/handler"
	interactionservice "resourcehub/internal/interaction/service"
	interactionstore "resourcehub/internal/interaction/store"
	"resourcehub/internal/platform/config"
	"resourcehub/internal/platform/httpserver"
	"resourcehub/internal/platform/logger"
	"resourcehub/internal/platform/metrics"
	"resourcehub/internal/platform/middleware"
	"resourcehub/internal/platform/postgres"
	"resourcehub/internal/platform/redis"
	"resourcehub/internal/sync"
	"resourcehub/internal/token"
	httptransport "resourcehub/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Redis backs the revocation list when configured; otherwise the list
	// lives in Postgres alongside the rest of the state.
	var trl revocation.List
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		trl = revocation.NewRedisTRL(redisClient.Client)
		log.Info("revocation list backed by redis")
	} else {
		trl = revocation.NewPostgresTRL(db)
		log.Info("revocation list backed by postgres")
	}

	auditPublisher, closeSink, err := buildAudit(cfg)
	if err != nil {
		log.Error("failed to initialize audit sink", "error", err)
		os.Exit(1)
	}
	defer closeSink()

	tokens := token.NewService(cfg.Auth)

	users := userstore.NewPostgres(db)
	catalog := catalogstore.NewPostgres(db)
	interactions := interactionstore.NewPostgres(db)

	authSvc := authservice.New(
		users, tokens, trl,
		google.NewVerifier(cfg.Google),
		auditPublisher, m, log,
	)
	catalogSvc := catalogservice.New(catalog, interactions)
	interactionSvc := interactionservice.New(interactions, catalog, catalogSvc)

	reconciler := sync.NewReconciler(
		sync.NewClient(cfg.Sync.BaseURL, cfg.Sync.FetchTimeout),
		catalog, m, log,
	)

	requireSession := middleware.SessionAuth(tokens, trl, m, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:           authhandler.New(authSvc, tokens.AccessTTL(), tokens.RefreshTTL(), log),
		Catalog:        cataloghandler.New(catalogSvc),
		Interaction:    interactionhandler.New(interactionSvc),
		Sync:           sync.NewHandler(reconciler, auditPublisher, log),
		RequireSession: requireSession,
		Metrics:        m,
		Logger:         log,
		Health: func(r *http.Request) error {
			if err := db.PingContext(r.Context()); err != nil {
				return err
			}
			if redisClient != nil {
				return redisClient.Health(r.Context())
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildAudit assembles the audit publisher: always an in-process store, plus
// the Kafka sink when brokers are configured.
func buildAudit(cfg config.Config) (*audit.Publisher, func(), error) {
	store := audit.NewMemoryStore()

	sink, err := audit.NewKafkaSink(cfg.Kafka)
	if err != nil {
		return nil, nil, err
	}
	if sink == nil {
		return audit.NewPublisher(store, nil), func() {}, nil
	}
	return audit.NewPublisher(store, sink), sink.Close, nil
}
