package config

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	// Server validation
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validBinds := []string{"loopback", "lan", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}
	if cfg.Server.Bind == "custom" && cfg.Server.CustomBindHost == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.customBindHost",
			Message: "required when bind is custom",
		})
	}
	if cfg.Server.ShutdownTimeout < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "server.shutdownTimeout",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Server.ShutdownTimeout),
		})
	}

	// Logging validation
	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	// Skill validation
	if cfg.Skill.Auth.Token != "" && cfg.Skill.Auth.Header == "" {
		issues = append(issues, ValidationIssue{
			Path:    "skill.auth.header",
			Message: "required when a token is set",
		})
	}

	// Skills validation
	names := make([]string, 0, len(cfg.Skills.MapURLs))
	for name := range cfg.Skills.MapURLs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !isWebURL(cfg.Skills.MapURLs[name]) {
			issues = append(issues, ValidationIssue{
				Path:    "skills.mapUrls." + name,
				Message: fmt.Sprintf("must be an http(s) URL, got %q", cfg.Skills.MapURLs[name]),
			})
		}
	}
	if web := cfg.Skills.CafeteriaWeb; web != nil {
		if web.Title == "" {
			issues = append(issues, ValidationIssue{
				Path:    "skills.cafeteriaWeb.title",
				Message: "title is required",
			})
		}
		if !isWebURL(web.URL) {
			issues = append(issues, ValidationIssue{
				Path:    "skills.cafeteriaWeb.url",
				Message: fmt.Sprintf("must be an http(s) URL, got %q", web.URL),
			})
		}
	}

	return issues
}

func isWebURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
