package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/session"
	"github.com/aretw0/cadence/pkg/sessions"
	"github.com/aretw0/cadence/pkg/wizard"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the sessions view and wizard sessions as a JSON API.
type Server struct {
	View     *sessions.View
	Catalog  ports.StepLoader
	Sessions *session.Manager
	Streams  *StreamManager

	hooks    domain.LifecycleHooks
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithHooks registers lifecycle hooks on every wizard sequence.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithMetrics serves the gatherer at GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler.
//
//	GET    /health
//	GET    /info
//	GET    /sessions?refresh=true
//	GET    /wizard/steps
//	POST   /wizard/sessions
//	GET    /wizard/sessions/{id}
//	POST   /wizard/sessions/{id}/{action}   (next, back, restart)
//	DELETE /wizard/sessions/{id}
//	GET    /wizard/sessions/{id}/events     (SSE)
//	GET    /metrics                         (with WithMetrics)
func NewHandler(view *sessions.View, catalog ports.StepLoader, manager *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		View:     view,
		Catalog:  catalog,
		Sessions: manager,
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/sessions", s.GetSessions)
	r.Route("/wizard", func(r chi.Router) {
		r.Get("/steps", s.GetSteps)
		r.Post("/sessions", s.StartWizard)
		r.Get("/sessions/{id}", s.GetWizard)
		r.Delete("/sessions/{id}", s.DeleteWizard)
		r.Get("/sessions/{id}/events", s.SubscribeEvents)
		r.Post("/sessions/{id}/{action}", s.StepWizard)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WizardResponse is the body of every wizard endpoint.
type WizardResponse struct {
	SessionID string        `json:"session_id"`
	Step      domain.Step   `json:"step"`
	Steps     []domain.Step `json:"steps"`
	IsFirst   bool          `json:"is_first"`
	IsLast    bool          `json:"is_last"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "cadence-http",
		"version": strings.TrimSpace(cadence.Version),
	})
}

// GetSessions handles GET /sessions. With refresh=true the view pulls from
// its sources first.
func (s *Server) GetSessions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		if err := s.View.Refresh(r.Context()); err != nil {
			s.logger.Error("sessions refresh failed", "error", err)
			http.Error(w, "Refresh error: "+err.Error(), statusFor(err))
			return
		}
	}
	s.writeJSON(w, http.StatusOK, s.View.Buckets())
}

// GetSteps handles GET /wizard/steps.
func (s *Server) GetSteps(w http.ResponseWriter, r *http.Request) {
	defs, err := s.Catalog.Steps(r.Context())
	if err != nil {
		s.logger.Error("catalog load failed", "error", err)
		http.Error(w, "Catalog error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, defs)
}

// StartWizard handles POST /wizard/sessions.
func (s *Server) StartWizard(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	state, err := s.Sessions.LoadOrStart(r.Context(), id)
	if err != nil {
		s.logger.Error("wizard start failed", "error", err)
		http.Error(w, "Start error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.respondWizard(w, r, http.StatusCreated, state)
}

// GetWizard handles GET /wizard/sessions/{id}.
func (s *Server) GetWizard(w http.ResponseWriter, r *http.Request) {
	state, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Load error: "+err.Error(), statusFor(err))
		return
	}
	s.respondWizard(w, r, http.StatusOK, state)
}

// StepWizard handles POST /wizard/sessions/{id}/{action}.
func (s *Server) StepWizard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	action, err := wizard.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	seq, err := cadence.NewSequence(r.Context(), s.Catalog, s.hooks)
	if err != nil {
		s.logger.Error("sequence build failed", "error", err)
		http.Error(w, "Catalog error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Stepping an unknown session is a client error, not an implicit start.
	_, moved, err := s.Sessions.Step(r.Context(), id, seq, action)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Error("wizard step failed", "session_id", id, "error", err)
		}
		http.Error(w, "Step error: "+err.Error(), statusFor(err))
		return
	}

	if moved {
		if payload, err := json.Marshal(seq.Current()); err == nil {
			s.Streams.Broadcast(id, string(payload))
		}
	}

	s.respond(w, http.StatusOK, id, seq)
}

// DeleteWizard handles DELETE /wizard/sessions/{id}.
func (s *Server) DeleteWizard(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "Delete error: "+err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respondWizard(w http.ResponseWriter, r *http.Request, status int, state *domain.WizardState) {
	seq, err := cadence.NewSequence(r.Context(), s.Catalog, domain.LifecycleHooks{})
	if err != nil {
		s.logger.Error("sequence build failed", "error", err)
		http.Error(w, "Catalog error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	seq.Seek(state.StepIndex)
	s.respond(w, status, state.SessionID, seq)
}

func (s *Server) respond(w http.ResponseWriter, status int, id string, seq *wizard.Sequence) {
	s.writeJSON(w, status, WizardResponse{
		SessionID: id,
		Step:      seq.Current(),
		Steps:     seq.All(),
		IsFirst:   seq.IsFirst(),
		IsLast:    seq.IsLast(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrMetadataNotFound):
		return http.StatusNotFound
	case errors.Is(err, sessions.ErrNoSources), errors.Is(err, domain.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrMissingRelation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
