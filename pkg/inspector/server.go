package inspector

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/elementview/internal/errors"
	"github.com/vango-dev/elementview/pkg/element"
	"github.com/vango-dev/elementview/pkg/export"
	"github.com/vango-dev/elementview/pkg/host/headless"
	"github.com/vango-dev/elementview/pkg/reactive"
	"github.com/vango-dev/elementview/pkg/scene"
)

// Server exposes a scene over HTTP.
type Server struct {
	// mu serializes every call into the scene.
	mu    sync.Mutex
	scene *scene.Scene
	subs  reactive.Subscriptions

	hub      *eventHub
	router   chi.Router
	gatherer prometheus.Gatherer
	logger   *slog.Logger

	srvMu    sync.Mutex
	server   *http.Server
	listener net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGatherer sets the registry served on /metrics.
// Default: prometheus.DefaultGatherer
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// New creates a server for sc and subscribes to every view's finish signal.
func New(sc *scene.Scene, opts ...Option) *Server {
	s := &Server{
		scene:    sc,
		hub:      newEventHub(),
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default().With("component", "inspector"),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, v := range sc.Tree().Views() {
		s.subs.Add(v.OnFinish(s.onFinish))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Get("/views", s.handleViews)
	r.Route("/views/{id}", func(r chi.Router) {
		r.Get("/", s.handleView)
		r.Get("/export", s.handleExport)
		r.Post("/resize", s.handleResize)
	})
	r.Post("/viewport", s.handleViewport)
	r.Get("/events", s.hub.handle)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) onFinish(v *element.View) {
	s.hub.broadcast(Event{
		Type:  EventFinish,
		ID:    v.ID(),
		Phase: v.Phase(),
		BBox:  v.BBox(),
	})
}

// Start listens on addr and serves in the background. It returns the
// bound address, which differs from addr when addr uses port 0.
func (s *Server) Start(addr string) (string, error) {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind first to fail fast on port conflicts
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.New("E400").WithDetailf("listening on %s", addr).Wrap(err)
	}

	s.server = &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.logger.Error("inspector stopped", "error", err)
		}
	}()

	s.logger.Info("inspector listening", "addr", listener.Addr().String())
	return listener.Addr().String(), nil
}

// Shutdown stops the HTTP server, closes event streams and releases the
// finish subscriptions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.srvMu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.srvMu.Unlock()

	s.hub.close()
	s.mu.Lock()
	s.subs.CancelAll()
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"clients": s.hub.clientCount(),
	})
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	views := s.scene.Tree().Views()
	states := make([]element.State, 0, len(views))
	for _, v := range views {
		states = append(states, v.SerializableState())
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, states)
}

// ViewDetail is the body of GET /views/{id}.
type ViewDetail struct {
	View        element.State      `json:"view"`
	Node        headless.NodeState `json:"node"`
	Stylesheets []string           `json:"stylesheets"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.scene.View(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewDetail{
		View:        v.SerializableState(),
		Node:        s.scene.Surface().Snapshot(v.Node()),
		Stylesheets: v.Stylesheets(),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	hidpi, _ := strconv.ParseBool(r.URL.Query().Get("hidpi"))

	var buf bytes.Buffer
	s.mu.Lock()
	v, err := s.scene.View(chi.URLParam(r, "id"))
	var target export.Target
	if err == nil {
		target, err = v.Export(format, hidpi)
	}
	if err == nil {
		err = target.Encode(&buf)
	}
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", target.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

type sizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func decodeSize(r *http.Request) (sizeRequest, error) {
	var req sizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Newf(errors.CategoryInspector, "invalid size body").Wrap(err)
	}
	if req.Width < 0 || req.Height < 0 {
		return req, errors.Newf(errors.CategoryInspector, "width and height must not be negative")
	}
	return req, nil
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSize(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if err := s.scene.Resize(id, req.Width, req.Height); err != nil {
		s.writeError(w, r, err)
		return
	}
	v, _ := s.scene.View(id)
	writeJSON(w, http.StatusOK, v.SerializableState())
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSize(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	s.scene.SetViewport(req.Width, req.Height)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, req)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "json encode error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := errors.FromError(err, "")
	status := http.StatusInternalServerError
	switch {
	case e.Code == "E203":
		status = http.StatusNotFound
	case e.Code == "E302", e.Category == errors.CategoryInspector:
		status = http.StatusBadRequest
	}
	s.logger.Warn("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", e.FormatCompact(),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(e.FormatJSON()))
}
