// Package proxy runs the local HTTP endpoint that relays chat requests to
// the completion API, so a browser dashboard never holds the credential.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/dylanratti/grain/internal/chat"
)

// Asker is the upstream completion capability. The chat client satisfies
// it; tests substitute a stub.
type Asker interface {
	Ask(ctx context.Context, messages []chat.Message, planContext string) (string, error)
}

// Config controls the proxy runtime.
type Config struct {
	Addr    string
	Timeout time.Duration
	Model   string
}

// Server relays chat requests upstream. One call per request, no retries,
// no streaming, no server-side conversation state.
type Server struct {
	cfg   Config
	asker Asker // nil when no credential is configured
	log   zerolog.Logger

	mu        sync.Mutex
	startedAt time.Time
	requests  int64
	failures  int64
}

// New returns a proxy server. A nil asker is allowed: every chat request
// then reports the configuration gap instead of failing obscurely.
func New(cfg Config, asker Asker, log zerolog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8484"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Server{
		cfg:       cfg,
		asker:     asker,
		log:       log,
		startedAt: time.Now(),
	}
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/status", s.handleStatus)
	r.Post("/api/chat", s.handleChat)

	return r
}

// Run serves until ctx is canceled, then drains in-flight requests with a
// short timeout.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().Str("addr", s.cfg.Addr).Bool("ready", s.asker != nil).Msg("chat proxy listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("chat proxy shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("proxy http server: %w", err)
	}
}

// maxChatBody caps request bodies. A real conversation never gets close.
const maxChatBody = 1 << 20

type chatRequest struct {
	Messages []chat.Message `json:"messages"`
	Context  string         `json:"context"`
}

type chatResponse struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

type statusResponse struct {
	StartedAt time.Time `json:"started_at"`
	UptimeSec int64     `json:"uptime_sec"`
	Requests  int64     `json:"requests"`
	Failures  int64     `json:"failures"`
	Model     string    `json:"model,omitempty"`
	Ready     bool      `json:"ready"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	st := statusResponse{
		StartedAt: s.startedAt,
		UptimeSec: int64(time.Since(s.startedAt).Seconds()),
		Requests:  s.requests,
		Failures:  s.failures,
		Model:     s.cfg.Model,
		Ready:     s.asker != nil,
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s.mu.Lock()
	s.requests++
	s.mu.Unlock()

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		s.writeError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}

	if s.asker == nil {
		s.writeError(w, http.StatusServiceUnavailable, "chat is not configured on this server")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	reply, err := s.asker.Ask(ctx, req.Messages, req.Context)
	switch {
	case err == nil:
	case errors.Is(err, chat.ErrNoCredential):
		s.writeError(w, http.StatusServiceUnavailable, "chat is not configured on this server")
		return
	case errors.Is(err, chat.ErrEmptyReply):
		s.writeError(w, http.StatusBadGateway, "the model returned an empty reply")
		return
	default:
		// Upstream details stay in the log; clients get a generic 502.
		s.log.Error().Err(err).Msg("upstream completion failed")
		s.writeError(w, http.StatusBadGateway, "upstream request failed")
		return
	}

	s.log.Info().
		Int("messages", len(req.Messages)).
		Dur("elapsed", time.Since(start)).
		Msg("chat relayed")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(chatResponse{Reply: reply})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.mu.Lock()
	s.failures++
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(chatResponse{Error: msg})
}
