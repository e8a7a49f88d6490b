package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tableside/internal/auth"
	"tableside/internal/config"
	"tableside/internal/infrastructure/logger"
	mongoinfra "tableside/internal/infrastructure/mongo"
	"tableside/internal/menu"
	"tableside/internal/notify"
	"tableside/internal/order"
	"tableside/internal/server"
	"tableside/internal/table"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := mongoinfra.NewConnection(ctx, cfg.Mongo)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := mongoinfra.Disconnect(disconnectCtx, db); err != nil {
			zapLogger.Warn("database disconnect failed", zap.Error(err))
		}
	}()
	zapLogger.Info("database connected")

	hub := notify.NewHub(cfg.AllowedOrigins, zapLogger)
	go hub.Run(ctx)

	var publisher notify.Publisher = hub
	if cfg.Notify.RedisAddr != "" {
		relay := notify.NewRedisRelay(cfg.Notify.RedisAddr, hub, zapLogger)
		go relay.Run(ctx)
		defer relay.Close()
		publisher = relay
		zapLogger.Info("redis relay enabled", zap.String("addr", cfg.Notify.RedisAddr))
	}

	authModule := auth.NewModule(db, cfg.Auth, zapLogger)
	menuModule := menu.NewModule(db, zapLogger)
	tableModule := table.NewModule(db, cfg.PublicAppURL, zapLogger)
	orderModule := order.NewModule(db, tableModule.Repository, menuModule.Repository, cfg.Payment, publisher, zapLogger)

	router := server.NewRouter(server.RouterDeps{
		Auth:           authModule,
		Menu:           menuModule,
		Table:          tableModule,
		Order:          orderModule,
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         zapLogger,
	})

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
