package skill

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sandol-bot/sandol/internal/logging"
	"github.com/sandol-bot/sandol/internal/version"
)

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
	Skills  int    `json:"skills,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Router builds the HTTP routes. Skill routes sit behind the shared-secret
// check; /health and /metrics do not.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware(s.log))
	r.Use(loggingMiddleware(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/skill/*", s.handleSkill)
		r.Post("/validation/{name}", s.handleValidation)
	})

	r.NotFound(handleNotFound)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: version.Version,
		Skills:  len(s.skills),
	}
	if !s.startedAt.IsZero() {
		resp.Uptime = time.Since(s.startedAt).Truncate(time.Second).String()
	}
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			resp.Status = "unavailable"
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSkill(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	out, err := s.Invoke(r.Context(), name, body)
	s.reply(w, r, out, err)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	out, err := s.InvokeValidation(r.Context(), name, body)
	s.reply(w, r, out, err)
}

// reply writes a skill result. Open Builder shows nothing to the user on a
// non-2xx answer, so failures are sent as the 200 fallback body.
func (s *Server) reply(w http.ResponseWriter, r *http.Request, out []byte, err error) {
	if errors.Is(err, ErrUnknownSkill) {
		handleNotFound(w, r)
		return
	}
	if err != nil {
		var f *Failure
		ev := logging.FromContext(r.Context(), s.log).Error()
		if errors.As(err, &f) && f.Reason == "payload" {
			ev = logging.FromContext(r.Context(), s.log).Warn()
		}
		ev.Err(err).Msg("answering with fallback")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
