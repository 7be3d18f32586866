// Package main provides the character sheet API server. It wires together
// configuration, database, services, and the HTTP listener.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/config"
	"github.com/ushki/dndsheet/internal/fixtures"
	"github.com/ushki/dndsheet/internal/httpapi"
	"github.com/ushki/dndsheet/internal/observability"
	"github.com/ushki/dndsheet/internal/server"
	"github.com/ushki/dndsheet/internal/service"
	"github.com/ushki/dndsheet/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seedDir := flag.String("seed", "", "path to catalog fixture YAML directory (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting character sheet API server",
		zap.String("addr", cfg.HTTP.Addr()),
	)

	// Connect to PostgreSQL
	ctx := context.Background()
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	// Build repositories and services
	users := postgres.NewUserRepository(pool.DB())
	characters := postgres.NewCharacterRepository(pool.DB())
	spells := postgres.NewSpellRepository(pool.DB())
	equipment := postgres.NewEquipmentRepository(pool.DB())

	tokens, err := service.NewTokenProvider(
		[]byte(cfg.Auth.Secret), cfg.Auth.Issuer,
		cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL,
	)
	if err != nil {
		logger.Fatal("building token provider", zap.Error(err))
	}

	authSvc := service.NewAuthService(users, tokens, logger)
	charSvc := service.NewCharacterService(characters, users, spells, logger)
	spellSvc := service.NewSpellService(spells, logger)
	equipSvc := service.NewEquipmentService(equipment, logger)

	// Seed catalog fixtures before accepting traffic
	if *seedDir != "" {
		seedStart := time.Now()
		report, err := fixtures.Seed(ctx, *seedDir, spells, equipment)
		if err != nil {
			logger.Fatal("seeding catalog fixtures", zap.Error(err))
		}
		logger.Info("catalog fixtures seeded",
			zap.Int("spells", report.Spells),
			zap.Int("equipment", report.Equipment),
			zap.Int("skipped", report.Skipped),
			zap.Duration("elapsed", time.Since(seedStart)),
		)

		created, err := fixtures.SeedDemo(ctx, users, characters)
		if err != nil {
			logger.Fatal("seeding demo account", zap.Error(err))
		}
		logger.Info("demo account ready",
			zap.String("username", fixtures.DemoUsername),
			zap.Bool("character_created", created),
		)
	}

	httpServer := httpapi.NewServer(cfg.HTTP, authSvc, tokens, charSvc, spellSvc, equipSvc, logger)

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)

	// Added before http so shutdown drains requests before closing the pool.
	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func() error {
			// Pool is already connected; just keep it alive
			for {
				time.Sleep(30 * time.Second)
				if err := pool.Health(ctx, 5*time.Second); err != nil {
					logger.Warn("database health check failed", zap.Error(err))
				}
			}
		},
		StopFn: func() {
			pool.Close()
		},
	})

	lifecycle.Add("http", &server.FuncService{
		StartFn: func() error {
			return httpServer.Start()
		},
		StopFn: func() {
			httpServer.Stop()
		},
	})

	logger.Info("server initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
