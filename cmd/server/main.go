package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"github.com/M1rr0rb4all/pscback/internal/companieshouse"
	httpapi "github.com/M1rr0rb4all/pscback/internal/http"
	"github.com/M1rr0rb4all/pscback/internal/ownership"
	ownershiphandler "github.com/M1rr0rb4all/pscback/internal/ownership/handler"
	ownershipmetrics "github.com/M1rr0rb4all/pscback/internal/ownership/metrics"
	"github.com/M1rr0rb4all/pscback/internal/platform/config"
	"github.com/M1rr0rb4all/pscback/internal/platform/httpserver"
	"github.com/M1rr0rb4all/pscback/internal/platform/logger"
	platformredis "github.com/M1rr0rb4all/pscback/internal/platform/redis"
	audit "github.com/M1rr0rb4all/pscback/pkg/platform/audit"
	"github.com/M1rr0rb4all/pscback/pkg/platform/audit/publisher"
	auditmemory "github.com/M1rr0rb4all/pscback/pkg/platform/audit/store/memory"
	auditpostgres "github.com/M1rr0rb4all/pscback/pkg/platform/audit/store/postgres"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(cfg.App.Env)
	log.Info("starting service", "app", cfg.App.Name, "env", cfg.App.Env, "addr", cfg.HTTP.Addr)

	if cfg.Registry.APIKey == "" {
		log.Warn("COMPANIES_HOUSE_API_KEY not set; resolutions will fail with configuration_error")
	}

	// Registry client, optionally wrapped with the redis response cache.
	client := companieshouse.New(companieshouse.Config{
		APIKey:  cfg.Registry.APIKey,
		BaseURL: cfg.Registry.BaseURL,
		Timeout: cfg.Registry.Timeout,
	}, log)

	var search ownership.CompanySearcher = client
	var parties ownership.PartiesFetcher = client

	rdb, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable, continuing without cache", "error", err)
	} else if rdb != nil {
		defer rdb.Close()
		cached := companieshouse.NewCached(client, rdb.Client, cfg.Registry.CacheTTL, log)
		search = cached
		parties = cached
		log.Info("registry cache enabled", "ttl", cfg.Registry.CacheTTL.String())
	}

	// Audit trail: postgres when a DSN is configured, in-memory otherwise.
	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if cfg.Audit.DSN != "" {
		db, err := sql.Open("postgres", cfg.Audit.DSN)
		if err != nil {
			log.Error("open audit database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = auditpostgres.New(db)
		log.Info("audit trail persisted to postgres")
	}
	var pubOpts []publisher.Option
	if cfg.Audit.AsyncBuffer > 0 {
		pubOpts = append(pubOpts, publisher.WithAsyncBuffer(cfg.Audit.AsyncBuffer))
	}
	auditor := publisher.NewPublisher(auditStore, pubOpts...)
	defer auditor.Close()

	m := ownershipmetrics.New()
	builder := ownership.NewBuilder(parties, log, m)
	service := ownership.NewService(search, builder, auditor, log, m)

	router := httpapi.New(httpapi.Deps{
		Logger:           log,
		Ownership:        ownershiphandler.New(service, log),
		APIKeyConfigured: client.Configured(),
		ServiceName:      cfg.App.Name,
	})

	srv := httpserver.New(cfg.HTTP.Addr, router)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("service stopped")
}
