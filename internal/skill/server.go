// Package skill serves skill and validation handlers to Kakao i Open
// Builder over HTTP.
package skill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/sandol-bot/sandol/internal/config"
	"github.com/sandol-bot/sandol/internal/kakao"
	"github.com/sandol-bot/sandol/internal/kakao/payload"
	"github.com/sandol-bot/sandol/internal/kakao/schema"
	"github.com/sandol-bot/sandol/internal/logging"
)

// maxBodyBytes bounds a skill request body.
const maxBodyBytes = 1 << 20

// ErrUnknownSkill is returned by Invoke for names nothing was registered
// under.
var ErrUnknownSkill = errors.New("unknown skill")

// Handler answers a skill request.
type Handler func(ctx context.Context, p *payload.Payload) (*kakao.Response, error)

// ValidationHandler answers a parameter validation request.
type ValidationHandler func(ctx context.Context, p *payload.ValidationPayload) (*kakao.ValidationResponse, error)

// Failure is why a request was answered with the fallback response.
type Failure struct {
	Skill  string
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("skill %s: %s: %v", f.Skill, f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Server is the skill HTTP server.
type Server struct {
	cfg         config.Config
	auth        ResolvedAuth
	log         *logging.Logger
	skills      map[string]Handler
	validations map[string]ValidationHandler
	schema      *schema.Validator
	metrics     *Metrics
	health      func(context.Context) error

	fallback           []byte
	validationFallback []byte

	startedAt   time.Time
	httpServer  *http.Server
	authLimiter *authRateLimiter
}

// ServerOption configures the skill server.
type ServerOption func(*Server)

// WithHealthCheck makes /health report unavailable while check fails.
func WithHealthCheck(check func(context.Context) error) ServerOption {
	return func(s *Server) {
		s.health = check
	}
}

// WithMetrics replaces the server's collectors.
func WithMetrics(m *Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a skill server. With skill.strictSchema set, every rendered
// response is also checked against the envelope schema.
func New(cfg config.Config, log *logging.Logger, opts ...ServerOption) (*Server, error) {
	s := &Server{
		cfg:         cfg,
		auth:        ResolveAuth(cfg.Skill.Auth),
		log:         log.Sub("skill"),
		skills:      make(map[string]Handler),
		validations: make(map[string]ValidationHandler),
		authLimiter: newAuthRateLimiter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	if cfg.Skill.StrictSchema {
		v, err := schema.New()
		if err != nil {
			return nil, err
		}
		s.schema = v
	}

	msg := cfg.Skill.FallbackMessage
	if msg == "" {
		msg = config.DefaultFallbackMessage
	}
	var err error
	if s.fallback, err = kakao.NewResponse().AddText(msg).JSON(); err != nil {
		return nil, fmt.Errorf("fallback message: %w", err)
	}
	if s.validationFallback, err = kakao.ValidationFailure(kakao.StatusError, msg).JSON(); err != nil {
		return nil, fmt.Errorf("fallback message: %w", err)
	}
	return s, nil
}

// Handle registers a skill under name. It is served at /skill/{name}.
func (s *Server) Handle(name string, h Handler) {
	s.skills[name] = h
}

// HandleValidation registers a validation skill, served at
// /validation/{name}.
func (s *Server) HandleValidation(name string, h ValidationHandler) {
	s.validations[name] = h
}

// Skills returns the registered skill names, sorted.
func (s *Server) Skills() []string {
	names := make([]string, 0, len(s.skills))
	for name := range s.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named skill on an encoded request body. When the handler
// fails the fallback response is returned together with a *Failure.
func (s *Server) Invoke(ctx context.Context, name string, body io.Reader) ([]byte, error) {
	h, ok := s.skills[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
	}
	return s.invoke(name, s.fallback, func() ([]byte, string, error) {
		p, err := payload.Parse(body)
		if err != nil {
			return nil, "payload", err
		}
		resp, err := h(ctx, p)
		if err != nil {
			return nil, "handler", err
		}
		if resp == nil {
			return nil, "handler", errors.New("no response")
		}
		out, err := resp.JSON()
		if err != nil {
			return nil, "render", err
		}
		if s.schema != nil {
			if err := s.schema.Validate(out); err != nil {
				return nil, "schema", err
			}
		}
		return out, "", nil
	})
}

// InvokeValidation runs the named validation skill on an encoded request
// body. Failures answer with an ERROR status.
func (s *Server) InvokeValidation(ctx context.Context, name string, body io.Reader) ([]byte, error) {
	h, ok := s.validations[name]
	if !ok {
		return nil, fmt.Errorf("%w: validation %s", ErrUnknownSkill, name)
	}
	return s.invoke("validation/"+name, s.validationFallback, func() ([]byte, string, error) {
		p, err := payload.ParseValidation(body)
		if err != nil {
			return nil, "payload", err
		}
		resp, err := h(ctx, p)
		if err != nil {
			return nil, "handler", err
		}
		if resp == nil {
			return nil, "handler", errors.New("no response")
		}
		out, err := resp.JSON()
		if err != nil {
			return nil, "render", err
		}
		return out, "", nil
	})
}

// invoke runs fn, recording metrics and converting failures and panics
// into the fallback body.
func (s *Server) invoke(name string, fallback []byte, fn func() ([]byte, string, error)) (out []byte, err error) {
	start := time.Now()
	reason := ""
	defer func() {
		if v := recover(); v != nil {
			reason, err = "panic", fmt.Errorf("panic: %v", v)
		}
		if err != nil {
			out = fallback
			err = &Failure{Skill: name, Reason: reason, Err: err}
			s.metrics.fallback(name, reason)
			s.metrics.observe(name, outcomeFallback, time.Since(start))
			return
		}
		s.metrics.observe(name, outcomeOK, time.Since(start))
	}()
	out, reason, err = fn()
	return out, err
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.ServerConfig) string {
	switch cfg.Bind {
	case "lan":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.CustomBindHost
		if host == "" {
			host = "0.0.0.0"
		}
		return net.JoinHostPort(host, fmt.Sprint(cfg.Port))
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// Start begins serving. It blocks until ctx is cancelled or the listener
// fails, then drains in-flight requests for up to server.shutdownTimeout
// seconds.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Server)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.startedAt = time.Now()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("bind", s.cfg.Server.Bind).
		Bool("auth", s.auth.Enabled()).
		Bool("strictSchema", s.schema != nil).
		Int("skills", len(s.skills)).
		Int("validations", len(s.validations)).
		Msg("skill server ready")

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.log.Info().Msg("shutting down skill server")
		timeout := time.Duration(s.cfg.Server.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("shutdown incomplete")
		}
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}
