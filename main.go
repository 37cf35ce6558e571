package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"social-server/confs"
	"social-server/db"
	"social-server/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// connect to database
	database, err := db.Connect(cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run server
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewServer(cfg, database, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *confs.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
