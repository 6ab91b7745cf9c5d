package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-adoption-server/internal/app/api"
	"github.com/Apurer/go-gin-adoption-server/internal/app/seed"
	accountsmemory "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/memory"
	accountsapp "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/application"
	catalogapp "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/application"
	gatewaypostgres "github.com/Apurer/go-gin-adoption-server/internal/gateway/postgres"
	"github.com/Apurer/go-gin-adoption-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-adoption-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-adoption-server/internal/platform/postgres"
)

func main() {
	path := flag.String("file", "seeds/catalog.yaml", "seed catalog to load")
	flag.Parse()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := platformobservability.NewLogger(os.Stdout, platformobservability.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; nothing to seed")
	}
	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	file, err := os.Open(*path)
	if err != nil {
		log.Fatalf("failed to open seed file: %v", err)
	}
	defer file.Close()
	catalog, err := seed.Decode(file)
	if err != nil {
		log.Fatalf("invalid seed file: %v", err)
	}

	gw := gatewaypostgres.NewGateway(db)
	accounts := accountsapp.NewService(gw, accountsmemory.NewSessionStore(), accountsapp.WithHashCost(cfg.PasswordHashCost))
	loader := seed.NewLoader(accounts, catalogapp.NewService(gw), logger)
	result, err := loader.Load(ctx, catalog)
	if err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}
	logger.Info("seed completed",
		slog.Bool("admin_created", result.AdminCreated),
		slog.Int("pet_types", result.PetTypes),
		slog.Int("pets", result.Pets),
	)
}
