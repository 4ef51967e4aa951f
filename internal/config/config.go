package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/kavyanair/mindhaven/backend/internal/service/generation"
)

// Config aggregates every externally injected setting. Credentials only ever
// arrive through the environment; there are no baked-in fallbacks.
type Config struct {
	Server ServerConfig
	DB     DatabaseConfig
	AI     AIConfig
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.AI.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Addr accepts a bare port, ":8080", or "127.0.0.1:8080".
func (c ServerConfig) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// DatabaseConfig carries the Postgres connection string.
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL,required"`
}

// Generation backends.
const (
	BackendProcess = "process"
	BackendHTTP    = "http"
)

// AIConfig selects and parameterizes the generation backend. Timeout is the
// hard wall-clock bound on a single model invocation.
type AIConfig struct {
	Backend string        `env:"AI_BACKEND" envDefault:"process"`
	Bin     string        `env:"AI_BIN" envDefault:"ollama"`
	Model   string        `env:"AI_MODEL" envDefault:"llama2"`
	BaseURL string        `env:"AI_BASE_URL" envDefault:"http://localhost:11434"`
	Timeout time.Duration `env:"AI_TIMEOUT" envDefault:"100s"`
}

func (c AIConfig) validate() error {
	switch c.Backend {
	case BackendProcess, BackendHTTP:
		return nil
	default:
		return fmt.Errorf("unknown AI_BACKEND %q (expected %q or %q)", c.Backend, BackendProcess, BackendHTTP)
	}
}

// NewClient builds the generation client selected by Backend.
func (c AIConfig) NewClient(ctx context.Context) (generation.Client, error) {
	switch c.Backend {
	case BackendProcess:
		return generation.NewLocalProcess(c.Bin, c.Model), nil
	case BackendHTTP:
		return generation.NewRemote(ctx, c.BaseURL, c.Model, c.Timeout)
	default:
		return nil, fmt.Errorf("unknown AI_BACKEND %q", c.Backend)
	}
}
