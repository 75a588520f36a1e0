package config

import (
	"fmt"
	"net/url"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "metrics.datadog.addr"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether issues contains at least one SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static validation of an App configuration.
//
// It does not mutate cfg. Callers may decide whether to treat warnings as
// fatal or not.
func Validate(cfg App) []Issue {
	var issues []Issue
	issues = append(issues, validateStorage(cfg.Storage)...)
	issues = append(issues, validateMetrics(cfg.Metrics)...)
	issues = append(issues, validateServer(cfg.Server)...)
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
		return issues
	}

	known := map[string]struct{}{
		"sqlite":   {},
		"postgres": {},
		"mysql":    {},
		"mssql":    {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; want one of sqlite, postgres, mysql, mssql", s.Kind),
		})
	}

	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  "storage.dsn must not be empty",
		})
	}

	if s.BusyTimeoutMS < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.busy_timeout_ms",
			Message:  "busy_timeout_ms must not be negative",
		})
	}
	if s.BusyTimeoutMS > 0 && s.Kind != "sqlite" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.busy_timeout_ms",
			Message:  fmt.Sprintf("busy_timeout_ms is only used by sqlite; ignored for %s", s.Kind),
		})
	}

	if s.Kind == "sqlite" && strings.Contains(s.DSN, ":memory:") {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.dsn",
			Message:  "in-memory sqlite database is discarded when the process exits",
		})
	}

	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch m.Backend {
	case "", "none":
	case "prompush":
		u, err := url.Parse(m.PushgatewayURL)
		if strings.TrimSpace(m.PushgatewayURL) == "" || err != nil || u.Scheme == "" || u.Host == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "prompush backend requires an absolute pushgateway_url",
			})
		}
		if strings.TrimSpace(m.Job) == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "metrics.job",
				Message:  "metrics.job is empty; the default job name \"shelf\" is used",
			})
		}
	case "datadog":
		if strings.TrimSpace(m.Datadog.Addr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.datadog.addr",
				Message:  "datadog backend requires metrics.datadog.addr",
			})
		}
		for i, tag := range m.Datadog.Tags {
			if !strings.Contains(tag, ":") {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("metrics.datadog.tags[%d]", i),
					Message:  fmt.Sprintf("tag %q is not in key:value form", tag),
				})
			}
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; want none, prompush or datadog", m.Backend),
		})
	}

	if m.FlushIntervalMS < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.flush_interval_ms",
			Message:  "flush_interval_ms must not be negative",
		})
	}

	return issues
}

func validateServer(s Server) []Issue {
	if strings.TrimSpace(s.Addr) == "" {
		return []Issue{{
			Severity: SeverityWarning,
			Path:     "server.addr",
			Message:  fmt.Sprintf("server.addr is empty; defaulting to %s", DefaultAddr),
		}}
	}
	return nil
}
