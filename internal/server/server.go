package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"threatingest/internal/handler"
	"threatingest/internal/threat"
)

const (
	// maxEventBytes caps the size of a trigger event accepted over HTTP.
	maxEventBytes     = 1 << 20
	readHeaderTimeout = 5 * time.Second
)

// Server exposes the ingestion handler over HTTP and gRPC for local runs.
type Server struct {
	handler *handler.Handler
	router  *mux.Router
	grpcSrv *grpc.Server

	mu         sync.Mutex
	httpSrv    *http.Server
	metricsSrv *http.Server
}

func New(h *handler.Handler) *Server {
	EnsureJSONCodec()
	s := &Server{handler: h, router: mux.NewRouter(), grpcSrv: grpc.NewServer()}
	s.routes()
	RegisterIngestServer(s.grpcSrv, &ingestService{srv: s})
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/v1/ingest", s.handleIngest).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

func (s *Server) Router() http.Handler { return s.router }

func newHTTPServer(h http.Handler) *http.Server {
	return &http.Server{Handler: h, ReadHeaderTimeout: readHeaderTimeout}
}

func (s *Server) StartMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := newHTTPServer(mux)
	srv.Addr = addr

	s.mu.Lock()
	s.metricsSrv = srv
	s.mu.Unlock()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", "err", err)
		}
	}()
}

// ListenAndServe serves the HTTP routes on addr. It returns nil once
// Shutdown has been called.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves the HTTP routes on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	srv := newHTTPServer(s.router)
	s.mu.Lock()
	s.httpSrv = srv
	s.mu.Unlock()

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleIngest accepts an S3 notification event and runs one invocation.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var evt events.S3Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes)).Decode(&evt); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event: "+err.Error())
		return
	}

	resp, err := s.handler.Handle(r.Context(), evt)
	switch {
	case errors.Is(err, threat.ErrMalformedEvent):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, threat.ErrDecode):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// StartGRPC serves the Ingest service on addr until the listener fails.
func (s *Server) StartGRPC(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.ServeGRPC(ln)
}

// ServeGRPC serves the Ingest service on an existing listener.
func (s *Server) ServeGRPC(ln net.Listener) error {
	return s.grpcSrv.Serve(ln)
}

// Stop halts the gRPC server.
func (s *Server) Stop() {
	s.grpcSrv.GracefulStop()
}

// Shutdown drains the HTTP and metrics listeners, then stops gRPC.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	servers := []*http.Server{s.httpSrv, s.metricsSrv}
	s.mu.Unlock()

	var errs []error
	for _, srv := range servers {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.Stop()
	return errors.Join(errs...)
}
