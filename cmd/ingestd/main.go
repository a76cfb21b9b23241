package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"threatingest/internal/app"
	"threatingest/internal/config"
	"threatingest/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load(".env")

	cfg := config.LoadLocal()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, app.ModeLocal)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	srv := server.New(a.Handler)

	srv.StartMetrics(cfg.MetricsAddr)
	go func() {
		slog.Info("grpc listening", "addr", cfg.GRPCAddr)
		if err := srv.StartGRPC(cfg.GRPCAddr); err != nil {
			slog.Error("grpc server error", "err", err)
			stop()
		}
	}()
	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(cfg.HTTPAddr); err != nil {
			slog.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
}
