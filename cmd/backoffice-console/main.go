package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/radieske/betting-backoffice/internal/backoffice/api"
	"github.com/radieske/betting-backoffice/internal/backoffice/audit"
	bhttp "github.com/radieske/betting-backoffice/internal/backoffice/http"
	"github.com/radieske/betting-backoffice/internal/backoffice/query"
	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
	"github.com/radieske/betting-backoffice/internal/backoffice/screens"
	"github.com/radieske/betting-backoffice/internal/shared/cache"
	"github.com/radieske/betting-backoffice/internal/shared/config"
	"github.com/radieske/betting-backoffice/internal/shared/db"
	"github.com/radieske/betting-backoffice/internal/shared/kafka"
	"github.com/radieske/betting-backoffice/internal/shared/logger"
	"github.com/radieske/betting-backoffice/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// métricas
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewConsole(reg)

	// backend REST
	client := api.New(cfg.APIBaseURL, cfg.APITimeout)
	client.OnCall = m.OnAPICall

	// cache de leitura: memória (com janitor) ou Redis compartilhado
	var (
		store   query.Store
		healthy = []func(context.Context) error{client.Ping}
	)
	switch cfg.CacheBackend {
	case "redis":
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		store = query.NewRedisStore(rdb, cfg.RedisPrefix)
		healthy = append(healthy, func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	default:
		mem := query.NewMemoryStore()
		janitor, err := query.StartJanitor(cfg.CachePruneSchedule, mem, log)
		if err != nil {
			log.Fatal("cache janitor", zap.Error(err))
		}
		defer janitor.Stop()
		store = mem
	}

	q := query.NewClient(store, query.Options{TTL: cfg.CacheTTL, FetchTimeout: cfg.APITimeout}, log, query.Hooks{
		OnHit:    m.OnHit,
		OnMiss:   m.OnMiss,
		OnFetch:  m.OnFetch,
		OnMutate: m.OnMutate,
	})

	// auditoria: sempre no log; Kafka e Postgres quando configurados
	recorders := audit.Multi{audit.LogRecorder{Log: log}}
	if cfg.KafkaBrokers != "" {
		writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicAudit)
		defer writer.Close()
		recorders = append(recorders, audit.NewKafkaPublisher(writer, cfg.TopicAudit))
		log.Info("audit stream enabled", zap.String("topic", cfg.TopicAudit))
	}
	if cfg.AuditPostgresDSN != "" {
		pg, err := db.ConnectPostgres(ctx, cfg.AuditPostgresDSN)
		if err != nil {
			log.Fatal("pg", zap.Error(err))
		}
		defer pg.Close()
		pgStore := audit.NewPostgresStore(pg)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatal("audit schema", zap.Error(err))
		}
		recorders = append(recorders, pgStore)
		healthy = append(healthy, pg.PingContext)
	}

	// telas
	set := screens.Build(screens.Deps{
		API:           client,
		Query:         q,
		PageSize:      cfg.PageSize,
		PickerWait:    cfg.PickerWait,
		DefaultBookie: cfg.DefaultBookie,
	})
	console, err := bhttp.NewServer(log, cfg.APIBaseURL)
	if err != nil {
		log.Fatal("console", zap.Error(err))
	}
	bhttp.Register(console, screen.NewController(set.Bets, q, recorders, log))
	bhttp.Register(console, screen.NewController(set.Bookies, q, recorders, log))
	bhttp.Register(console, screen.NewController(set.Customers, q, recorders, log))
	bhttp.Register(console, screen.NewController(set.Events, q, recorders, log))

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, reg, func(ctx context.Context) error {
		for _, check := range healthy {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}, func(err error) { log.Error("metrics server", zap.Error(err)) })
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           console.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("backoffice-console listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", cfg.APIBaseURL),
			zap.String("cache", cfg.CacheBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)
}
