package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fitcoach/backend/internal/admin"
	"github.com/fitcoach/backend/internal/auth"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/config"
	"github.com/fitcoach/backend/internal/db"
	"github.com/fitcoach/backend/internal/fatsecret"
	"github.com/fitcoach/backend/internal/middleware"
	"github.com/fitcoach/backend/internal/store"
	"github.com/fitcoach/backend/internal/telegram"
	"github.com/fitcoach/backend/internal/telemetry/metrics"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/internal/trainers"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	handler     http.Handler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

// Secrets come from the environment, never from the config file.
type Secrets struct {
	BotToken              string
	JWTSecret             string
	PostgresPassword      string
	RedisPassword         string
	FatSecretClientID     string
	FatSecretClientSecret string
	WebhookSecret         string
}

type NewServerParams struct {
	Config                  *config.Config
	Secrets                 Secrets
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitcoach-backend")
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.Secrets.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	repo := store.NewRepo(dbPool)
	if cfg.ApplySchema {
		if err := repo.Migrate(ctx); err != nil {
			dbPool.Close()
			otelShutdown()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Debugln("db schema applied")
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.Secrets.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   15 * time.Second,
	}

	authService := auth.NewService(
		repo,
		auth.NewTokenIssuer(params.Secrets.JWTSecret),
		auth.NewRedisRevoker(rdb),
		params.Secrets.BotToken,
		metricsManager,
	)
	authService.SetLifetimes(cfg.UserTokenTTL(), cfg.AdminTokenTTL(), cfg.InitDataMaxAge())

	coachingService := coaching.NewService(
		repo,
		coaching.WithLocation(loc),
		coaching.WithMetrics(metricsManager),
	)

	fatSecretClient := fatsecret.NewClient(fatsecret.Config{
		ClientID:     params.Secrets.FatSecretClientID,
		ClientSecret: params.Secrets.FatSecretClientSecret,
		TokenURL:     cfg.FatSecretTokenURL,
		APIURL:       cfg.FatSecretAPIURL,
	}, tracedHttpClient, metricsManager)

	handler := NewRouter(RouterParams{
		Handlers: Handlers{
			Auth:      auth.NewHandler(authService),
			Coaching:  coaching.NewHandler(coachingService),
			Trainer:   coaching.NewTrainerHandler(coachingService),
			Trainers:  trainers.NewHandler(trainers.NewService(repo)),
			Admin:     admin.NewHandler(admin.NewService(repo, metricsManager)),
			FatSecret: fatsecret.NewHandler(fatSecretClient),
			Webhook:   telegram.NewWebhookHandler(cfg.MiniAppURL, params.Secrets.WebhookSecret),
		},
		AuthMiddleware: middleware.NewAuthMiddlewareHandler(authService),
		RateLimiter:    redis_rate.NewLimiter(rdb),
		RateLimits: RateLimits{
			API:          cfg.APIRateLimit,
			TelegramAuth: cfg.TelegramAuthRateLimit,
			AdminLogin:   cfg.AdminLoginRateLimit,
			TrainerApply: cfg.TrainerApplyRateLimit,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		FrontendURL:    cfg.FrontendURL,
		MetricsManager: metricsManager,
		HealthCheck:    dbPool.Ping,
	})

	return &Server{
		config:         cfg,
		dbPool:         dbPool,
		redisClient:    rdb,
		handler:        handler,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:           s.handler,
		Addr:              ipAndPort,
		WriteTimeout:      time.Minute,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}
