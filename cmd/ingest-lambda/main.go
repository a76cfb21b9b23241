package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"threatingest/internal/app"
	"threatingest/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	a, err := app.Build(context.Background(), cfg, app.ModeLambda)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}

	lambda.Start(a.Handler.Handle)
}
