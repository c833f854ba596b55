// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults applied by MergeWithDefaults callers.
const (
	DefaultStoreDriver = "sqlite"
	DefaultStoreDSN    = "resume-draft.db"
	DefaultPort        = 8080
)

// Config represents settings that can be loaded from a JSON file or the environment.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Rendering
	Template  string `json:"template,omitempty"`   // Path to a text/template LaTeX file
	OutputDir string `json:"output_dir,omitempty"` // Directory for generated .tex files
	FileName  string `json:"file_name,omitempty"`  // Base name for downloads (derived from the name when empty)

	// Draft storage
	StoreDriver string `json:"store_driver,omitempty"` // "sqlite" or "postgres"
	StoreDSN    string `json:"store_dsn,omitempty"`    // SQLite file path or PostgreSQL URL

	// Server
	Port           int      `json:"port,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins; empty allows all

	Verbose bool `json:"verbose,omitempty"` // Print render summaries
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. DATABASE_URL selects the
// postgres store unless RESUME_STORE_DRIVER says otherwise.
func FromEnv() Config {
	cfg := Config{
		Template:    os.Getenv("RESUME_TEMPLATE"),
		OutputDir:   os.Getenv("RESUME_OUTPUT_DIR"),
		StoreDriver: os.Getenv("RESUME_STORE_DRIVER"),
		StoreDSN:    os.Getenv("RESUME_STORE_DSN"),
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" && cfg.StoreDSN == "" {
		if cfg.StoreDriver == "" {
			cfg.StoreDriver = "postgres"
		}
		if cfg.StoreDriver == "postgres" {
			cfg.StoreDSN = dbURL
		}
	}

	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}

	return cfg
}

// Validate checks that the configuration has valid values.
// Required values are checked by the commands that need them.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("config error: 'store_driver' must be sqlite or postgres, got %q", c.StoreDriver)
	}

	if c.StoreDriver == "postgres" && c.StoreDSN == "" {
		return fmt.Errorf("config error: 'store_dsn' is required for the postgres store")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	if c.OutputDir != "" {
		info, err := os.Stat(c.OutputDir)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_dir is not a directory: %s", c.OutputDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer the config file over the environment and built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.FileName == "" {
		result.FileName = defaults.FileName
	}
	if result.StoreDriver == "" {
		result.StoreDriver = defaults.StoreDriver
	}
	if result.StoreDSN == "" {
		result.StoreDSN = defaults.StoreDSN
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	if result.StoreDriver == "" {
		result.StoreDriver = DefaultStoreDriver
	}
	if result.StoreDSN == "" && result.StoreDriver == DefaultStoreDriver {
		result.StoreDSN = DefaultStoreDSN
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
