package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adoptionserver "github.com/Apurer/go-gin-adoption-server/go"

	accountsmemory "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/memory"
	accountsobs "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/observability"
	accountspostgres "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/persistence/postgres"
	accountsredis "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/redis"
	accountsapp "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/application"
	accountsports "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
	adoptionsevents "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/adapters/events"
	adoptionsobs "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/adapters/observability"
	adoptionsapp "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/application"
	catalogobs "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/application"
	reviewsobs "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/adapters/observability"
	reviewsapp "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/application"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
	gatewaymemory "github.com/Apurer/go-gin-adoption-server/internal/gateway/memory"
	gatewaypostgres "github.com/Apurer/go-gin-adoption-server/internal/gateway/postgres"
	"github.com/Apurer/go-gin-adoption-server/internal/platform/metrics"
	"github.com/Apurer/go-gin-adoption-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-adoption-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-adoption-server/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-adoption-server/internal/platform/redis"
	"github.com/Apurer/go-gin-adoption-server/internal/platform/storage"
)

const serviceName = "adoption-api"

// Run boots the adoption HTTP API with observability, storage, and sessions
// wired, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(cfg.LogLevel),
		platformobservability.WithEnvironment(cfg.Environment),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := metrics.NewRegistry()
	router, cleanup, err := BuildRouter(ctx, cfg, instruments, registry)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("adoption API listening", slog.String("addr", server.Addr), slog.String("environment", cfg.Environment))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("adoption API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down adoption API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// BuildRouter assembles storage, services and HTTP handlers. The returned
// cleanup closes database and cache connections.
func BuildRouter(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, registry *metrics.Registry) (*gin.Engine, func(), error) {
	logger := instruments.Logger
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	cleanups = append(cleanups, closeDB)
	gw, err := buildGateway(db, registry, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	sessions, closeSessions := buildSessionStore(ctx, cfg, db, logger)
	cleanups = append(cleanups, closeSessions)

	images, err := storage.NewLocalStorage(cfg.UploadDir, storage.DefaultURLPrefix)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	accountService := accountsobs.New(
		accountsapp.NewService(gw, sessions,
			accountsapp.WithSessionTTL(cfg.SessionTTL),
			accountsapp.WithHashCost(cfg.PasswordHashCost),
		),
		accountsobs.WithLogger(logger),
		accountsobs.WithTracer(instruments.Tracer("internal.accounts.application")),
		accountsobs.WithMeter(instruments.Meter("internal.accounts.application")),
	)
	catalogService := catalogobs.New(
		catalogapp.NewService(gw, catalogapp.WithImageStore(images)),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	adoptionService := adoptionsobs.New(
		adoptionsapp.NewService(gw,
			adoptionsapp.WithEventPublisher(adoptionsevents.NewLogPublisher(logger)),
			adoptionsapp.WithLogger(logger),
		),
		adoptionsobs.WithLogger(logger),
		adoptionsobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptionsobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)
	reviewService := reviewsobs.New(
		reviewsapp.NewService(gw),
		reviewsobs.WithLogger(logger),
		reviewsobs.WithTracer(instruments.Tracer("internal.reviews.application")),
		reviewsobs.WithMeter(instruments.Meter("internal.reviews.application")),
	)

	cookie := adoptionserver.CookieSettings{
		Name:   cfg.SessionCookieName,
		Secure: cfg.SecureCookies,
		MaxAge: int(cfg.SessionTTL.Seconds()),
	}
	dashboard, err := adoptionserver.NewDashboard(accountService, catalogService, adoptionService, reviewService, cookie)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load dashboard templates: %w", err)
	}

	handlers := adoptionserver.ApiHandleFunctions{
		AccountAPI:  adoptionserver.NewAccountAPI(accountService, cookie),
		PetAPI:      adoptionserver.NewPetAPI(catalogService),
		AdoptionAPI: adoptionserver.NewAdoptionAPI(adoptionService),
		ReviewAPI:   adoptionserver.NewReviewAPI(reviewService),
		Dashboard:   dashboard,
	}
	router := adoptionserver.NewRouter(handlers, adoptionserver.RouterOptions{
		Accounts:       accountService,
		CookieName:     cfg.SessionCookieName,
		ServiceName:    serviceName,
		Metrics:        registry,
		LoginLimiter:   adoptionserver.NewLoginRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst, registry),
		AllowedOrigins: cfg.AllowedOrigins,
		UploadDir:      images.Dir(),
		UploadPrefix:   images.URLPrefix(),
		EnableSwagger:  !cfg.IsProduction(),
	})
	return router, cleanup, nil
}

func buildGateway(db *gorm.DB, registry *metrics.Registry, logger *slog.Logger) (gateway.Gateway, error) {
	if db == nil {
		logger.Info("persistence gateway configured in memory")
		return gatewaymemory.NewGateway(), nil
	}
	if err := migrations.Run(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := registry.InstrumentGorm(db); err != nil {
		logger.Warn("failed to instrument gorm", slog.String("error", err.Error()))
	}
	logger.Info("persistence gateway configured with postgres")
	return gatewaypostgres.NewGateway(db), nil
}

// buildSessionStore prefers Redis, then the PostgreSQL table, then process memory.
func buildSessionStore(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) (accountsports.SessionStore, func()) {
	if cfg.Redis.Addr != "" {
		client, err := platformredis.NewClient(ctx, platformredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			logger.Info("session store configured with redis", slog.String("addr", cfg.Redis.Addr))
			return accountsredis.NewSessionStore(client), func() { _ = client.Close() }
		}
		logger.Warn("failed to connect to redis, falling back", slog.String("error", err.Error()))
	}
	if db != nil {
		logger.Info("session store configured with postgres")
		return accountspostgres.NewSessionStore(db), func() {}
	}
	logger.Info("session store configured in memory")
	return accountsmemory.NewSessionStore(), func() {}
}
