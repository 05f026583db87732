package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/coursekit/accessible/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // ACCESSIBLE_CONFIG: config file name or path
	Author     string        // ACCESSIBLE_AUTHOR: metadata author
	Subject    string        // ACCESSIBLE_SUBJECT: metadata subject
	Keywords   string        // ACCESSIBLE_KEYWORDS: metadata keywords
	Engine     string        // ACCESSIBLE_ENGINE: builtin or pandoc
	Stream     string        // ACCESSIBLE_STREAM: .shn stream letter
	Timeout    time.Duration // ACCESSIBLE_TIMEOUT: render timeout
	Workers    int           // ACCESSIBLE_WORKERS: parallel workers
}

// knownEnvVars lists valid ACCESSIBLE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"ACCESSIBLE_CONFIG":   true,
	"ACCESSIBLE_AUTHOR":   true,
	"ACCESSIBLE_SUBJECT":  true,
	"ACCESSIBLE_KEYWORDS": true,
	"ACCESSIBLE_ENGINE":   true,
	"ACCESSIBLE_STREAM":   true,
	"ACCESSIBLE_TIMEOUT":  true,
	"ACCESSIBLE_WORKERS":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized ACCESSIBLE_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("ACCESSIBLE_CONFIG"),
		Author:     os.Getenv("ACCESSIBLE_AUTHOR"),
		Subject:    os.Getenv("ACCESSIBLE_SUBJECT"),
		Keywords:   os.Getenv("ACCESSIBLE_KEYWORDS"),
		Engine:     os.Getenv("ACCESSIBLE_ENGINE"),
		Stream:     os.Getenv("ACCESSIBLE_STREAM"),
	}

	if timeout := os.Getenv("ACCESSIBLE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("ACCESSIBLE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized ACCESSIBLE_* variables.
// Helps catch typos like ACCESSIBLE_AUTOR instead of ACCESSIBLE_AUTHOR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ACCESSIBLE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// Flags are merged afterwards, giving: flags > env vars > config > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Render.Engine = env.Engine
	}
	if env.Stream != "" {
		cfg.Stream = env.Stream
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}

// mergeFlags merges CLI flags into config. Flag values override everything.
func mergeFlags(f *runFlags, cfg *config.Config) {
	if f.render.stream != "" {
		cfg.Stream = f.render.stream
	}
	if f.render.engine != "" {
		cfg.Render.Engine = f.render.engine
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
}
