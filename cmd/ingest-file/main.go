package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"threatingest/internal/app"
	"threatingest/internal/config"
	"threatingest/internal/handler"
	"threatingest/internal/threat"
)

func main() {
	_ = godotenv.Load(".env")

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ingest-file s3://bucket/key | path/to/file.{json,csv}")
		os.Exit(2)
	}
	ref, local, err := parseTarget(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := config.LoadLocal()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var opts []app.Option
	if local {
		opts = append(opts, app.WithFetcher(threat.FetcherFunc(readLocal)))
	}
	a, err := app.Build(ctx, cfg, app.ModeLocal, opts...)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}

	processed, err := a.Handler.Ingest(ctx, ref)
	if err != nil {
		slog.Error("ingest run failed", "object", ref.String(), "err", err)
		os.Exit(1)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	_ = out.Encode(handler.Response{StatusCode: http.StatusOK, Body: handler.ProcessedBody(processed)})
	if a.Memory != nil {
		_ = out.Encode(a.Memory.All())
	}
}
