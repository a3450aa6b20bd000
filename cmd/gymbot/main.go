package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gymbot/core/config"
	"gymbot/core/database"
	"gymbot/core/logger"
	"gymbot/core/telegram"
	"gymbot/internal/bot"
	"gymbot/internal/workout"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.InitLogger(cfg); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Shutdown() }()

	if err := database.RunMigrations(cfg.Database); err != nil {
		logger.L.Error("migrations failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.L.Error("db connect failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	store := workout.NewPostgresStore(db, time.Duration(cfg.Database.QueryTimeoutSeconds)*time.Second)
	machine := workout.NewMachine(store, workout.NewAggregator(store), workout.NewSessionStore(), workout.DefaultCatalog())
	b := bot.New(machine)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = telegram.Run(ctx, telegram.RunOptions{
		Config:      cfg,
		Middlewares: telegram.DefaultMiddlewares(cfg, nil),
		Routes:      b.Routes(),
	})
	if err != nil {
		logger.L.Error("bot stopped", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.L.Info("bot stopped")
}
