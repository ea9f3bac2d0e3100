package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/jyami/userstore/internal/config"
	"github.com/jyami/userstore/internal/logger"
	"github.com/jyami/userstore/internal/server"
	"github.com/jyami/userstore/internal/storage"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	log.Info("userstore starting",
		zap.String("port", cfg.Server.Port),
		zap.String("backend", cfg.Storage.Backend),
		zap.Uint("shards", cfg.Storage.Shards),
	)

	repo, err := storage.New(storage.Kind(cfg.Storage.Backend), cfg.Storage.Shards)
	if err != nil {
		log.Error("cant initialize storage", zap.Error(err))
		return err
	}

	address := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error("listener error", zap.Error(err))
		return err
	}
	log.Info("listening on", zap.String("address", address))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(server.NewEngine(repo, log.Named("engine")), log.Named("server"), cfg.Server.ShutdownTimeout)
	if err := srv.Serve(ctx, listener); err != nil {
		log.Error("server stopped unexpectedly", zap.Error(err))
		return err
	}

	log.Info("userstore stopped", zap.Int("users", repo.Len()))
	return nil
}
