package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/HerbHall/gutwise/internal/config"
	"github.com/HerbHall/gutwise/internal/recipes"
	"github.com/HerbHall/gutwise/internal/server"
	"github.com/HerbHall/gutwise/internal/services"
	"github.com/HerbHall/gutwise/internal/store"
	"github.com/HerbHall/gutwise/internal/version"
	"github.com/HerbHall/gutwise/pkg/catalog"
)

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		newLogger(false).Fatal("failed to load configuration", zap.Error(err))
	}
	settings, err := cfg.Settings()
	if err != nil {
		newLogger(false).Fatal("invalid configuration", zap.Error(err))
	}

	logger := newLogger(settings.Log.Development)
	defer logger.Sync() //nolint:errcheck // nothing useful to do on sync failure

	logger.Info("GutWise server starting",
		zap.String("version", version.Short()),
		zap.String("config", cfg.ConfigFileUsed()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.New(settings.Database.Path)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	recipeRepo, err := services.NewSQLiteRecipeRepository(ctx, db)
	if err != nil {
		logger.Fatal("failed to prepare recipes", zap.Error(err))
	}
	storyRepo, err := services.NewSQLiteStoryRepository(ctx, db)
	if err != nil {
		logger.Fatal("failed to prepare personal stories", zap.Error(err))
	}

	if settings.Seed.Enabled {
		if _, err := services.Seed(ctx, catalog.NewCatalog(), recipeRepo, storyRepo, logger.Named("seed")); err != nil {
			logger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	handler := recipes.NewHandler(recipeRepo, storyRepo, logger.Named("recipes"),
		recipes.WithDefaultLimit(settings.API.DefaultLimit))

	srv := server.New(server.Options{
		Addr:            settings.Addr(),
		AllowedOrigins:  settings.CORS.AllowedOrigins,
		RateLimit:       settings.RateLimit.RPS,
		RateBurst:       settings.RateLimit.Burst,
		ShutdownTimeout: settings.Server.ShutdownTimeout,
	}, db, logger.Named("http"), handler)

	logger.Info("GutWise server ready", zap.String("addr", srv.Addr()))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		return
	}
	logger.Info("GutWise server stopped")
}
