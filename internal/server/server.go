// Package server exposes scene export over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness, pings the store when it supports it
//	GET  /kinds            registered classes and their kinds
//	POST /documents        serialize a scene description and publish it
//	GET  /documents/{key}  fetch a published document
//	GET  /metrics          Prometheus metrics, when a handler is configured
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/pipeline"
)

// Server serves documents produced by a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics http.Handler
	maxBody int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithMaxBody bounds the size of POST /documents bodies.
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a server around runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		maxBody: pipeline.MaxSceneSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.health)
	r.Get("/kinds", s.kinds)
	r.Route("/documents", func(r chi.Router) {
		r.Post("/", s.createDocument)
		r.Get("/{key}", s.getDocument)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.runner.Store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeNetwork, err, "store unavailable"))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type kindEntry struct {
	Class string `json:"class"`
	Kind  string `json:"kind"`
}

func (s *Server) kinds(w http.ResponseWriter, r *http.Request) {
	table := s.runner.Table
	entries := []kindEntry{}
	for _, class := range table.Classes() {
		kind, _ := table.KindOf(class)
		entries = append(entries, kindEntry{Class: class, Kind: string(kind)})
	}
	writeJSON(w, http.StatusOK, entries)
}

type createResponse struct {
	Key     string `json:"key"`
	Records int    `json:"records"`
	Cached  bool   `json:"cached"`
}

// createDocument reads a scene description. The format comes from the
// format query parameter, else the Content-Type, else JSON.
func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error:   string(errors.ErrCodeInvalidInput),
				Message: "scene description too large",
			})
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		SceneData:   string(body),
		SceneFormat: requestFormat(r),
		Formats:     []string{pipeline.FormatJSON},
		Compact:     true,
		Publish:     true,
		Logger:      s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if res.StoreHit {
		status = http.StatusOK
	}
	w.Header().Set("Location", "/documents/"+res.Key)
	writeJSON(w, status, createResponse{Key: res.Key, Records: res.Stats.Records, Cached: res.StoreHit})
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	data, err := s.runner.Fetch(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func requestFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	switch ct := r.Header.Get("Content-Type"); {
	case strings.Contains(ct, "yaml"):
		return "yaml"
	case strings.Contains(ct, "toml"):
		return "toml"
	}
	return "json"
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
	Class   string `json:"class,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(errors.GetCode(err))
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}

	resp := errorResponse{Error: string(errors.GetCode(err)), Message: errors.UserMessage(err)}
	if resp.Error == "" {
		resp.Error = string(errors.ErrCodeInternal)
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		resp.Ref, resp.Class = e.Ref, e.Class
	}
	writeJSON(w, status, resp)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScene, errors.ErrCodeInvalidKey:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnregisteredKind, errors.ErrCodeMissingGeometry, errors.ErrCodeUnsupportedComposite,
		errors.ErrCodeNotSupported, errors.ErrCodeCyclicGraph, errors.ErrCodeKindMismatch,
		errors.ErrCodeUnsupportedArray, errors.ErrCodeEmptyDocument:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNetwork:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
