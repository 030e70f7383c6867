// Command server runs the record screening API: the HTTP server plus the
// background worker that downloads court documents. Business logic lives in
// the internal feature packages; main only wires them together.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	analysishandler "cleanslate/internal/analysis/handler"
	analysismetrics "cleanslate/internal/analysis/metrics"
	analysisservice "cleanslate/internal/analysis/service"
	"cleanslate/internal/audit"
	authhandler "cleanslate/internal/auth/handler"
	authmetrics "cleanslate/internal/auth/metrics"
	authservice "cleanslate/internal/auth/service"
	authstore "cleanslate/internal/auth/store"
	"cleanslate/internal/auth/token"
	gradeshandler "cleanslate/internal/grades/handler"
	gradesmetrics "cleanslate/internal/grades/metrics"
	gradesservice "cleanslate/internal/grades/service"
	gradesstore "cleanslate/internal/grades/store"
	petitionhandler "cleanslate/internal/petition/handler"
	petitionmetrics "cleanslate/internal/petition/metrics"
	petitionservice "cleanslate/internal/petition/service"
	petitionstore "cleanslate/internal/petition/store"
	"cleanslate/internal/platform/config"
	"cleanslate/internal/platform/httpserver"
	"cleanslate/internal/platform/kafka"
	"cleanslate/internal/platform/logger"
	platformmetrics "cleanslate/internal/platform/metrics"
	"cleanslate/internal/platform/postgres"
	"cleanslate/internal/platform/ratelimit"
	platformredis "cleanslate/internal/platform/redis"
	profilehandler "cleanslate/internal/profile/handler"
	profileservice "cleanslate/internal/profile/service"
	profilestore "cleanslate/internal/profile/store"
	"cleanslate/internal/sourcerecord/fetch"
	sourcerecordhandler "cleanslate/internal/sourcerecord/handler"
	sourcerecordmetrics "cleanslate/internal/sourcerecord/metrics"
	"cleanslate/internal/sourcerecord/queue"
	sourcerecordservice "cleanslate/internal/sourcerecord/service"
	sourcerecordstore "cleanslate/internal/sourcerecord/store"
	httptransport "cleanslate/internal/transport/http"
	"cleanslate/internal/ujs"
	ujshandler "cleanslate/internal/ujs/handler"
	ujsmetrics "cleanslate/internal/ujs/metrics"
	ujsservice "cleanslate/internal/ujs/service"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores. Without a postgres URL everything runs in memory, which is
	// enough for local development.
	var (
		users         authstore.Store         = authstore.NewMemoryStore()
		profiles      profilestore.Store      = profilestore.NewMemoryStore()
		templates     petitionstore.Store     = petitionstore.NewMemoryStore()
		sourceRecords sourcerecordstore.Store = sourcerecordstore.NewMemoryStore()
		files         sourcerecordstore.Files = sourcerecordstore.NewMemoryFiles()
		chargeRecords gradesstore.Store       = gradesstore.NewMemoryStore()
		auditEvents   audit.Store             = audit.NewMemoryStore()
	)
	checks := map[string]httptransport.HealthChecker{}
	if cfg.PostgresURL != "" {
		db, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		users = authstore.NewPostgres(db)
		profiles = profilestore.NewPostgres(db)
		templates = petitionstore.NewPostgres(db)
		sourceRecords = sourcerecordstore.NewPostgres(db)
		files = sourcerecordstore.NewPostgresFiles(db)
		chargeRecords = gradesstore.NewPostgres(db)
		auditEvents = audit.NewPostgres(db)
		checks["postgres"] = dbHealth{db: db}
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	var searchCache ujs.Cache
	if redisClient != nil {
		defer redisClient.Close()
		searchCache = ujs.NewRedisCache(redisClient.Client)
		checks["redis"] = redisClient
	}

	// Kafka clients for the document fetch queue.
	srMetrics := sourcerecordmetrics.New()
	producer, err := kafka.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		log.Error("kafka unavailable", "error", err)
		os.Exit(1)
	}
	defer producer.Close()
	if err := kafka.EnsureTopic(ctx, producer, queue.Topic, 1); err != nil {
		log.Error("could not create fetch topic", "error", err)
		os.Exit(1)
	}
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroup, queue.Topic)
	if err != nil {
		log.Error("kafka consumer unavailable", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	// Services.
	tokens := token.New(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	publisher := queue.NewPublisher(producer, log, srMetrics)
	srService := sourcerecordservice.New(sourceRecords, files, fetch.New(nil), publisher, log, srMetrics)
	worker := queue.NewWorker(consumer, srService, log, srMetrics)

	petService := petitionservice.New(templates, log, petitionmetrics.New())
	profService := profileservice.New(profiles, petService, log)
	authService := authservice.New(users, tokens, profService, log, authmetrics.New())
	anService := analysisservice.New(log, analysismetrics.New())
	ujsClient := ujs.NewClient(nil, cfg.UJSSearchURL)
	ujsService := ujsservice.New(ujsClient, searchCache, cfg.UJSCacheTTL, log, ujsmetrics.New())
	grService := gradesservice.New(chargeRecords, log, gradesmetrics.New())

	auditService := audit.NewService(auditEvents)
	auditInbox := make(chan audit.Event, 256)
	auditWorker := audit.NewWorker(auditService, auditInbox)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:        log,
		Metrics:       platformmetrics.New(),
		Validator:     tokens,
		Auth:          authhandler.New(authService, log),
		Profile:       profilehandler.New(profService, log),
		SourceRecords: sourcerecordhandler.New(srService, log),
		Analysis:      analysishandler.New(anService, log),
		Petitions:     petitionhandler.New(petService, profService, log),
		UJS:           ujshandler.New(ujsService, log),
		Grades:        gradeshandler.New(grService, log),
		Activity:      audit.NewHandler(auditService, log),
		AuthLimit:     ratelimit.New(cfg.AuthRateLimit, time.Minute),
		SearchLimit:   ratelimit.New(cfg.SearchRateLimit, time.Minute),
		AuditEvents:   auditInbox,
		Checks:        checks,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting fetch worker", "topic", queue.Topic)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// dbHealth adapts *sql.DB to the router's health check.
type dbHealth struct {
	db *sql.DB
}

func (h dbHealth) Health(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
