// Package config defines the application configuration model for shelf and
// the loader that reads it from disk.
//
// Files may be JSON or YAML; the format is chosen by extension (".yaml" and
// ".yml" are YAML, anything else is JSON). Field names are identical in both.
//
// Example (YAML):
//
//	storage:
//	  kind: sqlite
//	  dsn: shelf.db
//	metrics:
//	  backend: prompush
//	  job: shelf
//	  pushgateway_url: http://pushgateway:9091
//	server:
//	  addr: ":8080"
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// App is the top-level configuration object.
type App struct {
	Storage Storage `json:"storage" yaml:"storage"`
	Metrics Metrics `json:"metrics" yaml:"metrics"`
	Server  Server  `json:"server" yaml:"server"`
}

// Storage selects the backend the store opens.
type Storage struct {
	// Kind is a registered storage kind: sqlite, postgres, mysql or mssql.
	Kind string `json:"kind" yaml:"kind"`

	// DSN is passed to the backend driver unchanged. For sqlite it is the
	// path of the database file.
	DSN string `json:"dsn" yaml:"dsn"`

	// BusyTimeoutMS is how long sqlite waits on a locked file, in milliseconds.
	BusyTimeoutMS int `json:"busy_timeout_ms" yaml:"busy_timeout_ms"`
}

// BusyTimeout returns BusyTimeoutMS as a duration.
func (s Storage) BusyTimeout() time.Duration {
	return time.Duration(s.BusyTimeoutMS) * time.Millisecond
}

// Metrics selects and configures the metrics backend.
type Metrics struct {
	// Backend is "", "none", "prompush" or "datadog".
	Backend string `json:"backend" yaml:"backend"`

	// Job is the Pushgateway job name.
	Job string `json:"job" yaml:"job"`

	// PushgatewayURL is the base URL of the Pushgateway (prompush only).
	PushgatewayURL string `json:"pushgateway_url" yaml:"pushgateway_url"`

	// FlushIntervalMS controls how often metrics are pushed; 0 pushes only at
	// shutdown.
	FlushIntervalMS int `json:"flush_interval_ms" yaml:"flush_interval_ms"`

	Datadog Datadog `json:"datadog" yaml:"datadog"`
}

// Datadog holds DogStatsD settings.
type Datadog struct {
	Addr      string   `json:"addr" yaml:"addr"`
	Namespace string   `json:"namespace" yaml:"namespace"`
	Tags      []string `json:"tags" yaml:"tags"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr string `json:"addr" yaml:"addr"`
}

// DefaultAddr is used when server.addr is empty.
const DefaultAddr = ":8080"

// Load reads and decodes the configuration file at path.
func Load(path string) (App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return App{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Decode(data, formatOf(path))
	if err != nil {
		return App{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Format is a configuration file format.
type Format int

const (
	JSON Format = iota
	YAML
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Decode parses data in the given format. Unknown fields are rejected so
// typos surface instead of silently falling back to defaults.
func Decode(data []byte, f Format) (App, error) {
	var cfg App
	switch f {
	case YAML:
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return App{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return App{}, fmt.Errorf("decode json: %w", err)
		}
	}
	return cfg, nil
}
