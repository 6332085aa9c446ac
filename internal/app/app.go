// Package app assembles the review service and its infrastructure from config.
//
// Every backing service is optional outside production: without DATABASE_URL
// the stores are in-memory, without REDIS_URL final scores are not cached and
// without KAFKA_BROKERS audit events stay in the database.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"calibra/internal/platform/config"
	"calibra/internal/platform/kafka"
	platformmetrics "calibra/internal/platform/metrics"
	"calibra/internal/platform/ops"
	"calibra/internal/platform/postgres"
	"calibra/internal/platform/redis"
	reviewmetrics "calibra/internal/review/metrics"
	"calibra/internal/review/service"
	"calibra/internal/review/store/adjustment"
	"calibra/internal/review/store/cycle"
	"calibra/internal/review/store/finalscore"
	"calibra/internal/review/store/nomination"
	"calibra/internal/review/store/reviews"
	"calibra/internal/review/store/session"
	"calibra/internal/review/store/user"
	"calibra/internal/review/worker"
	audit "calibra/pkg/platform/audit"
	"calibra/pkg/platform/audit/outbox"
	"calibra/pkg/platform/audit/publisher"
	auditmemory "calibra/pkg/platform/audit/store/memory"
	auditpostgres "calibra/pkg/platform/audit/store/postgres"
	"calibra/pkg/platform/tx"
)

type App struct {
	Config          config.Config
	Logger          *slog.Logger
	Registry        *prometheus.Registry
	Metrics         *reviewmetrics.Metrics
	PlatformMetrics *platformmetrics.Metrics
	Service         *service.Service
	Monitor         *worker.DeadlineMonitor
	// Relay is nil unless both DATABASE_URL and KAFKA_BROKERS are set.
	Relay *outbox.Relay

	db        *sql.DB
	redis     *redis.Client
	producer  *kafka.Producer
	publisher *publisher.Publisher
}

// Build connects to the configured backends and wires the service. On error
// anything already opened is closed.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *App, err error) {
	a := &App{Config: cfg, Logger: logger, Registry: prometheus.NewRegistry()}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = reviewmetrics.New(a.Registry)
	a.PlatformMetrics = platformmetrics.New(a.Registry)

	if cfg.Database.URL != "" {
		if a.db, err = postgres.Open(ctx, cfg.Database); err != nil {
			return nil, err
		}
		if cfg.Database.RunMigrations {
			if err = postgres.Migrate(ctx, a.db); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
	}
	if a.redis, err = redis.New(ctx, cfg.Redis); err != nil {
		return nil, err
	}
	if a.producer, err = kafka.NewProducer(cfg.Kafka); err != nil {
		return nil, err
	}

	stores, auditStore := a.stores()

	pubOpts := []publisher.Option{publisher.WithLogger(logger)}
	if cfg.AuditAsyncBuffer > 0 {
		pubOpts = append(pubOpts, publisher.WithAsyncBuffer(cfg.AuditAsyncBuffer))
	}
	a.publisher = publisher.NewPublisher(auditStore, pubOpts...)

	svcOpts := []service.Option{
		service.WithLogger(logger),
		service.WithAuditPublisher(a.publisher),
		service.WithMetrics(a.Metrics),
	}
	if a.db != nil {
		svcOpts = append(svcOpts, service.WithTxRunner(tx.Runner{DB: a.db}))
	}
	if a.Service, err = service.New(stores, svcOpts...); err != nil {
		return nil, err
	}

	a.Monitor = worker.NewDeadlineMonitor(stores.Cycles,
		worker.WithInterval(cfg.DeadlineCheckInterval),
		worker.WithLogger(logger),
		worker.WithMetrics(a.Metrics),
		worker.WithAuditPublisher(a.publisher),
	)

	if a.producer != nil {
		if err = a.producer.EnsureTopic(ctx, cfg.Kafka.AuditTopic, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
			return nil, err
		}
		if source, ok := auditStore.(*auditpostgres.Store); ok {
			a.Relay = outbox.NewRelay(source, a.producer, cfg.Kafka.AuditTopic,
				outbox.WithInterval(cfg.Kafka.OutboxPollInterval),
				outbox.WithLogger(logger),
			)
		}
	}
	return a, nil
}

func (a *App) stores() (service.Stores, audit.Store) {
	if a.db == nil {
		a.Logger.Warn("DATABASE_URL not set, using in-memory stores")
		records := reviews.New()
		return service.Stores{
			Cycles:             cycle.New(),
			FinalScores:        a.cached(finalscore.New()),
			Users:              user.New(),
			Nominations:        nomination.New(),
			Adjustments:        adjustment.New(),
			Sessions:           session.New(),
			SelfReviews:        records,
			PeerFeedback:       records,
			ManagerEvaluations: records,
		}, auditmemory.NewInMemoryStore()
	}

	records := reviews.NewPostgres(a.db)
	return service.Stores{
		Cycles:             cycle.NewPostgres(a.db),
		FinalScores:        a.cached(finalscore.NewPostgres(a.db)),
		Users:              user.NewPostgres(a.db),
		Nominations:        nomination.NewPostgres(a.db),
		Adjustments:        adjustment.NewPostgres(a.db),
		Sessions:           session.NewPostgres(a.db),
		SelfReviews:        records,
		PeerFeedback:       records,
		ManagerEvaluations: records,
	}, auditpostgres.New(a.db)
}

func (a *App) cached(next finalscore.Store) service.FinalScoreStore {
	if a.redis == nil {
		return next
	}
	return finalscore.NewCached(next, a.redis.Client, a.Config.FinalScoreCacheTTL,
		finalscore.WithCacheLogger(a.Logger),
		finalscore.WithCacheMetrics(a.Metrics),
	)
}

// ReadinessChecks returns one ops check per configured backend.
func (a *App) ReadinessChecks() []ops.Option {
	var checks []ops.Option
	if a.db != nil {
		checks = append(checks, ops.WithCheck("postgres", a.db.PingContext))
	}
	if a.redis != nil {
		checks = append(checks, ops.WithCheck("redis", a.redis.Health))
	}
	if a.producer != nil {
		checks = append(checks, ops.WithCheck("kafka", a.producer.Health))
	}
	return checks
}

// Close drains the audit publisher before closing connections.
func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.producer != nil {
		a.producer.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("close redis", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Warn("close database", "error", err)
		}
	}
}
