// Package handler adapts the ingestion pipeline to S3 notification events.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"threatingest/internal/threat"
)

// Runner processes one stored object.
type Runner interface {
	Run(ctx context.Context, ref threat.ObjectRef) (int, error)
}

// Response is the invocation result returned to the host.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Handler serves trigger events.
type Handler struct {
	runner Runner
}

func New(r Runner) *Handler {
	return &Handler{runner: r}
}

// Handle processes the object named by evt. Any returned error fails the
// invocation.
func (h *Handler) Handle(ctx context.Context, evt events.S3Event) (Response, error) {
	if raw, err := json.Marshal(evt); err == nil {
		slog.Info("received event", "event", string(raw))
	}

	ref, err := threat.ObjectRefFromEvent(evt)
	if err != nil {
		slog.Error("malformed event", "err", err)
		return Response{}, err
	}

	processed, err := h.Ingest(ctx, ref)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: http.StatusOK, Body: ProcessedBody(processed)}, nil
}

// Ingest processes an already decoded object reference.
func (h *Handler) Ingest(ctx context.Context, ref threat.ObjectRef) (int, error) {
	return h.runner.Run(ctx, ref)
}

// ProcessedBody renders the success body {"processed": n}.
func ProcessedBody(processed int) string {
	return fmt.Sprintf(`{"processed":%d}`, processed)
}
