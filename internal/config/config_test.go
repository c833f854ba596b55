package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"output_dir": "out",
		"file_name": "jane-doe",
		"store_driver": "postgres",
		"store_dsn": "postgres://localhost/resume",
		"port": 9000,
		"allowed_origins": ["http://localhost:3000"],
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "jane-doe", cfg.FileName)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "postgres://localhost/resume", cfg.StoreDSN)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RESUME_TEMPLATE", "custom.tex")
	t.Setenv("RESUME_OUTPUT_DIR", "build")
	t.Setenv("RESUME_STORE_DRIVER", "")
	t.Setenv("RESUME_STORE_DSN", "")
	t.Setenv("DATABASE_URL", "postgres://db/resume")
	t.Setenv("PORT", "7070")

	cfg := FromEnv()

	assert.Equal(t, "custom.tex", cfg.Template)
	assert.Equal(t, "build", cfg.OutputDir)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "postgres://db/resume", cfg.StoreDSN)
	assert.Equal(t, 7070, cfg.Port)
}

func TestFromEnv_ExplicitSQLiteIgnoresDatabaseURL(t *testing.T) {
	t.Setenv("RESUME_STORE_DRIVER", "sqlite")
	t.Setenv("RESUME_STORE_DSN", "")
	t.Setenv("DATABASE_URL", "postgres://db/resume")
	t.Setenv("PORT", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Empty(t, cfg.StoreDSN)
	assert.Zero(t, cfg.Port)
}

func TestValidate(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "template.tex")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty is valid", Config{}, ""},
		{"full sqlite", Config{StoreDriver: "sqlite", StoreDSN: "a.db", Port: 8080, Template: existing}, ""},
		{"unknown driver", Config{StoreDriver: "mysql"}, "store_driver"},
		{"postgres without dsn", Config{StoreDriver: "postgres"}, "store_dsn"},
		{"port out of range", Config{Port: 70000}, "port"},
		{"missing template", Config{Template: "/nonexistent/t.tex"}, "template file not found"},
		{"output dir is a file", Config{OutputDir: existing}, "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Template:    "default.tex",
		OutputDir:   "out",
		StoreDriver: "postgres",
		StoreDSN:    "postgres://db",
		Port:        9090,
	}

	partial := Config{
		Template: "custom.tex",
		Verbose:  true,
	}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "custom.tex", merged.Template)
	assert.True(t, merged.Verbose)
	assert.Equal(t, "out", merged.OutputDir)
	assert.Equal(t, "postgres", merged.StoreDriver)
	assert.Equal(t, "postgres://db", merged.StoreDSN)
	assert.Equal(t, 9090, merged.Port)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{FileName: "jane"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "jane", merged.FileName)
	assert.Equal(t, DefaultStoreDriver, merged.StoreDriver)
	assert.Equal(t, DefaultStoreDSN, merged.StoreDSN)
	assert.Equal(t, DefaultPort, merged.Port)
}
