// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"threatingest/internal/metrics"
)

// ErrMissingEnv reports a required environment variable that is unset.
var ErrMissingEnv = errors.New("missing required environment variable")

// Config holds ingestion configuration
type Config struct {
	TableName       string // DDB_TABLE
	TopicARN        string // SNS_TOPIC_ARN
	MetricNamespace string

	AWSRegion    string
	AWSEndpoint  string // optional override, e.g. LocalStack
	AWSKeyID     string
	AWSSecretKey string

	HTTPAddr    string
	GRPCAddr    string
	MetricsAddr string
	LogLevel    string
}

// Load reads the environment and fails when DDB_TABLE or SNS_TOPIC_ARN is
// missing. It is called once before any invocation is served.
func Load() (*Config, error) {
	cfg := LoadLocal()
	if cfg.TableName == "" {
		return nil, fmt.Errorf("%w: DDB_TABLE", ErrMissingEnv)
	}
	if cfg.TopicARN == "" {
		return nil, fmt.Errorf("%w: SNS_TOPIC_ARN", ErrMissingEnv)
	}
	if err := cfg.validateCredentials(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadLocal reads the environment without requiring the table or topic.
// The local runners fall back to in-memory collaborators for whatever is
// left empty.
func LoadLocal() *Config {
	return &Config{
		TableName:       os.Getenv("DDB_TABLE"),
		TopicARN:        os.Getenv("SNS_TOPIC_ARN"),
		MetricNamespace: getEnv("METRIC_NAMESPACE", metrics.DefaultNamespace),
		AWSRegion:       os.Getenv("AWS_REGION"),
		AWSEndpoint:     os.Getenv("AWS_ENDPOINT_URL"),
		AWSKeyID:        os.Getenv("TI_AWS_ACCESS_KEY_ID"),
		AWSSecretKey:    os.Getenv("TI_AWS_SECRET_ACCESS_KEY"),
		HTTPAddr:        getEnv("TI_HTTP_ADDR", ":8080"),
		GRPCAddr:        getEnv("TI_GRPC_ADDR", ":9000"),
		MetricsAddr:     getEnv("TI_METRICS_ADDR", ":9090"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// HasStaticCredentials reports whether an explicit key pair was supplied.
func (c *Config) HasStaticCredentials() bool {
	return c.AWSKeyID != "" && c.AWSSecretKey != ""
}

func (c *Config) validateCredentials() error {
	if (c.AWSKeyID == "") != (c.AWSSecretKey == "") {
		return fmt.Errorf("TI_AWS_ACCESS_KEY_ID and TI_AWS_SECRET_ACCESS_KEY must be set together")
	}
	return nil
}

// SlogLevel maps LogLevel to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
