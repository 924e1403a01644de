package config

import (
	"errors"
	"path/filepath"
	"testing"

	"produce-mcp/internal/roles"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATA_PATH", "LOGS_FOLDER", "PRODUCE_ROLE", "CALENDAR_OUTPUT_DIR", "ENABLE_MERMAID_CHARTS", "OPEN_BROWSER"} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv("/opt/produce")
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}

	if cfg.DataPath != "" {
		t.Errorf("DataPath = %q, want embedded catalog", cfg.DataPath)
	}
	if cfg.Role != roles.Customer {
		t.Errorf("Role = %q, want customer", cfg.Role)
	}
	if want := filepath.Join("/opt/produce", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, want)
	}
	if want := filepath.Join("/opt/produce", "out"); cfg.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, want)
	}
	if !cfg.EnableMermaidCharts {
		t.Error("mermaid charts should default to enabled")
	}
	if cfg.OpenBrowser {
		t.Error("browser should default to closed")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	data := t.TempDir()
	t.Setenv("DATA_PATH", data)
	t.Setenv("PRODUCE_ROLE", "Sales")
	t.Setenv("ENABLE_MERMAID_CHARTS", "false")
	t.Setenv("OPEN_BROWSER", "1")

	cfg, err := FromEnv("")
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}

	if cfg.DataPath != data {
		t.Errorf("DataPath = %q, want %q", cfg.DataPath, data)
	}
	if want := filepath.Join(data, "out"); cfg.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, want)
	}
	if cfg.Role != roles.Sales {
		t.Errorf("Role = %q, want sales", cfg.Role)
	}
	if cfg.EnableMermaidCharts || !cfg.OpenBrowser {
		t.Errorf("boolean overrides not applied: %+v", cfg)
	}
}

func TestFromEnv_MalformedBoolKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENABLE_MERMAID_CHARTS", "sometimes")

	cfg, err := FromEnv("")
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	if !cfg.EnableMermaidCharts {
		t.Error("malformed value should keep the default")
	}
}

func TestFromEnv_Errors(t *testing.T) {
	t.Run("UnknownRole", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PRODUCE_ROLE", "guest")
		if _, err := FromEnv(""); !errors.Is(err, roles.ErrUnknownRole) {
			t.Errorf("expected ErrUnknownRole, got %v", err)
		}
	})

	t.Run("MissingDataPath", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATA_PATH", filepath.Join(t.TempDir(), "missing"))
		if _, err := FromEnv(""); err == nil {
			t.Error("expected error for missing data directory")
		}
	})
}
