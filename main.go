package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"moodbot/internal/config"
	"moodbot/internal/content"
	"moodbot/internal/handler"
	"moodbot/internal/media"
	"moodbot/internal/mood"
	"moodbot/internal/repository"
	"moodbot/internal/scheduler"
	"moodbot/internal/server"
	"moodbot/internal/service"
	"moodbot/internal/telegram_bot"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Optional .env for BOT_TOKEN / DATABASE_URL / JWT_SECRET
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", zap.Error(err))
	}

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, logger)
	checkinRepo := repository.NewCheckinRepository(db, logger)
	adminRepo := repository.NewAdminRepository(db, logger)

	// Content snapshots and media store
	classifier := mood.NewClassifier(filepath.Join(cfg.Content.Dir, "keywords.json"), logger)
	catalog := content.NewCatalog(filepath.Join(cfg.Content.Dir, "responses.json"), logger)
	mediaStore := media.NewStore(cfg.Content.MediaDir)
	selector := content.NewSelector(catalog, mediaStore)

	// Core check-in service
	checkinService := service.NewCheckinService(
		userRepo, checkinRepo, classifier, selector, catalog,
		service.Options{
			Cooldown:    time.Duration(cfg.Checkin.CooldownSeconds) * time.Second,
			StatsWindow: time.Duration(cfg.Stats.WindowSeconds) * time.Second,
			LogRawText:  cfg.Privacy.LogRawText,
		},
		logger,
	)

	// Admin API auth
	authService := service.NewAuthService(adminRepo, cfg.Server.JWTSecret, logger)

	// Initialize Telegram bot
	bot, err := telegram_bot.NewBot(cfg, checkinService, mediaStore, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram bot, continuing without it", zap.Error(err))
		bot = nil
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var broadcaster handler.Broadcaster
	if bot != nil {
		broadcaster = bot

		go func() {
			if err := bot.Start(ctx); err != nil {
				logger.Error("Telegram bot failed", zap.Error(err))
			}
		}()

		// Weekly check-in prompt
		weekly, err := scheduler.NewWeekly(cfg.Checkin.Day, cfg.Checkin.Hour, cfg.Checkin.Timezone,
			bot.BroadcastCheckinPrompt, logger)
		if err != nil {
			logger.Fatal("Failed to schedule weekly broadcast", zap.Error(err))
		}
		weekly.Start()
		defer weekly.Stop()
	}

	// Initialize and run the admin API server
	srv := server.NewServer(checkinService, authService, checkinRepo, broadcaster, logger)
	go srv.Run(cfg.Server.Port)

	<-ctx.Done()
	logger.Info("Application stopped.")
}
