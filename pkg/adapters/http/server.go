// Package http exposes the wizard engine over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/validate"
	"github.com/aretw0/enform/pkg/wizard"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the wizard surface the HTTP adapter drives.
type Engine interface {
	Current() wizard.Step
	Steps() []wizard.Step
	Phase() domain.Phase
	Goto(ctx context.Context, stepID string) error
	SetField(ctx context.Context, path, value string) error
	SetToggle(ctx context.Context, flag string, on bool) error
	Touch(path string)
	Record() domain.Record
	Errors() domain.ErrorMap
	VisibleErrors() domain.ErrorMap
	Forward(ctx context.Context) (string, error)
	Back(ctx context.Context) string
	Toggle(ctx context.Context, questionID, optionID string, multi bool)
	Selected(questionID string) []string
	IsSelected(questionID, optionID string) bool
	Aggregate(ctx context.Context) wizard.Summary
	Finalize(ctx context.Context) wizard.Summary
}

// Server drives an Engine over HTTP.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// Option configures the handler.
type Option func(*handlerConfig)

type handlerConfig struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *handlerConfig) {
		c.logger = logger
	}
}

// WithMetricsGatherer mounts /metrics for the given gatherer.
func WithMetricsGatherer(g prometheus.Gatherer) Option {
	return func(c *handlerConfig) {
		c.gatherer = g
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	cfg := &handlerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	s := &Server{engine: engine, logger: cfg.logger}

	r := chi.NewRouter()
	r.Get("/steps", s.listSteps)
	r.Get("/step", s.currentStep)
	r.Post("/step/goto", s.gotoStep)
	r.Put("/step/fields/{path}", s.setField)
	r.Post("/step/fields/{path}/touch", s.touchField)
	r.Put("/step/toggles/{flag}", s.setToggle)
	r.Post("/step/forward", s.forward)
	r.Post("/step/back", s.back)
	r.Get("/selections/{question}", s.selections)
	r.Post("/selections/{question}/{option}", s.toggleSelection)
	r.Get("/confirmation", s.confirmation)
	r.Post("/finalize", s.finalize)

	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type stepView struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Addr          string          `json:"addr"`
	Phase         domain.Phase    `json:"phase"`
	Record        domain.Record   `json:"record"`
	Errors        domain.ErrorMap `json:"errors"`
	VisibleErrors domain.ErrorMap `json:"visible_errors"`
}

func (s *Server) currentView() stepView {
	step := s.engine.Current()
	return stepView{
		ID:            step.ID,
		Title:         step.Title,
		Addr:          step.Addr,
		Phase:         s.engine.Phase(),
		Record:        s.engine.Record(),
		Errors:        s.engine.Errors(),
		VisibleErrors: s.engine.VisibleErrors(),
	}
}

func (s *Server) listSteps(w http.ResponseWriter, r *http.Request) {
	steps := s.engine.Steps()
	out := make([]map[string]string, 0, len(steps))
	for _, step := range steps {
		out = append(out, map[string]string{
			"id":    step.ID,
			"title": step.Title,
			"addr":  step.Addr,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) currentStep(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.currentView())
}

func (s *Server) gotoStep(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.engine.Goto(r.Context(), body.ID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, s.currentView())
}

func (s *Server) setField(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "path")
	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.engine.SetField(r.Context(), path, body.Value); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	out := struct {
		stepView
		Affected []string `json:"affected"`
	}{
		stepView: s.currentView(),
		Affected: s.affected(path),
	}
	s.writeJSON(w, http.StatusOK, out)
}

// affected lists the paths whose validity can change with this update, so
// clients re-render confirmation pairs and phone composites together with
// the edited field.
func (s *Server) affected(path string) []string {
	for _, sc := range s.engine.Current().Schemas {
		if sc.Has(path) {
			return validate.Affected(sc, path)
		}
	}
	return []string{path}
}

func (s *Server) touchField(w http.ResponseWriter, r *http.Request) {
	s.engine.Touch(chi.URLParam(r, "path"))
	s.writeJSON(w, http.StatusOK, s.currentView())
}

func (s *Server) setToggle(w http.ResponseWriter, r *http.Request) {
	flag := chi.URLParam(r, "flag")
	var body struct {
		On bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.engine.SetToggle(r.Context(), flag, body.On); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, s.currentView())
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request) {
	addr, err := s.engine.Forward(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNavigationBlocked) {
			s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"blocked": true,
				"errors":  s.engine.VisibleErrors(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("forward failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"addr": addr})
}

func (s *Server) back(w http.ResponseWriter, r *http.Request) {
	addr := s.engine.Back(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]string{"addr": addr})
}

func (s *Server) selections(w http.ResponseWriter, r *http.Request) {
	question := chi.URLParam(r, "question")
	s.writeJSON(w, http.StatusOK, map[string]any{
		"question": question,
		"selected": s.engine.Selected(question),
	})
}

func (s *Server) toggleSelection(w http.ResponseWriter, r *http.Request) {
	question := chi.URLParam(r, "question")
	option := chi.URLParam(r, "option")
	multi := r.URL.Query().Get("multi") == "true"

	s.engine.Toggle(r.Context(), question, option, multi)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"question": question,
		"selected": s.engine.Selected(question),
	})
}

func (s *Server) confirmation(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Aggregate(r.Context()))
}

func (s *Server) finalize(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Finalize(r.Context()))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
