package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ESV.APIKey != "${ESV_API_KEY}" {
		t.Errorf("ESV.APIKey = %q, want env placeholder", cfg.ESV.APIKey)
	}
	if cfg.ESV.BaseURL == "" || cfg.NET.BaseURL == "" {
		t.Error("expected default provider base URLs")
	}
	if cfg.ESV.RateLimit <= 0 {
		t.Errorf("ESV.RateLimit = %f", cfg.ESV.RateLimit)
	}
	if cfg.Analysis.Enabled {
		t.Error("analysis pass should default to off")
	}
	if cfg.Analysis.Model != "gpt-4o" {
		t.Errorf("Analysis.Model = %q", cfg.Analysis.Model)
	}
	if len(cfg.Commentary.Sources) != 2 {
		t.Errorf("Commentary.Sources = %v", cfg.Commentary.Sources)
	}
	if cfg.Resolve.MaxConcurrentFetches != 4 {
		t.Errorf("MaxConcurrentFetches = %d", cfg.Resolve.MaxConcurrentFetches)
	}
	if cfg.Resolve.MainFile != "main.tex" {
		t.Errorf("MainFile = %q", cfg.Resolve.MainFile)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_ESV_KEY", "secret123")
		defer os.Unsetenv("TEST_ESV_KEY")

		if got := ResolveEnvVars("${TEST_ESV_KEY}"); got != "secret123" {
			t.Errorf("ResolveEnvVars() = %q", got)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		if got := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}"); got != "" {
			t.Errorf("ResolveEnvVars() = %q, want empty", got)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		if got := ResolveEnvVars("literal-key"); got != "literal-key" {
			t.Errorf("ResolveEnvVars() = %q", got)
		}
	})
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		content := `
esv:
  api_key: "file-key"
  timeout_seconds: 5
resolve:
  main_file: book.tex
`
		if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("NewManager() error = %v", err)
		}

		cfg := mgr.Get()
		if cfg.ESV.APIKey != "file-key" {
			t.Errorf("ESV.APIKey = %q", cfg.ESV.APIKey)
		}
		if cfg.ESV.TimeoutSeconds != 5 {
			t.Errorf("ESV.TimeoutSeconds = %d", cfg.ESV.TimeoutSeconds)
		}
		if cfg.Resolve.MainFile != "book.tex" {
			t.Errorf("Resolve.MainFile = %q", cfg.Resolve.MainFile)
		}
		// Values the file omitted fall back to defaults.
		if cfg.NET.TimeoutSeconds != 30 {
			t.Errorf("NET.TimeoutSeconds = %d, want default 30", cfg.NET.TimeoutSeconds)
		}
	})

	t.Run("missing config file uses defaults", func(t *testing.T) {
		mgr, err := NewManager("")
		if err != nil {
			t.Fatalf("NewManager() error = %v", err)
		}
		if mgr.Get().ESV.BaseURL == "" {
			t.Error("defaults not applied")
		}
	})
}

func TestProviderConfigConversion(t *testing.T) {
	os.Setenv("TEST_CONVERT_KEY", "resolved-key")
	defer os.Unsetenv("TEST_CONVERT_KEY")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := DefaultConfig()
	cfg.ESV.APIKey = "${TEST_CONVERT_KEY}"
	cfg.ESV.TimeoutSeconds = 7
	cfg.Analysis.Enabled = true
	cfg.Analysis.APIKey = "${TEST_CONVERT_KEY}"

	esv := cfg.ESVProviderConfig(logger)
	if esv.APIKey != "resolved-key" {
		t.Errorf("ESV APIKey = %q, want resolved env value", esv.APIKey)
	}
	if esv.Timeout != 7*time.Second {
		t.Errorf("ESV Timeout = %v", esv.Timeout)
	}

	a := cfg.AnalyzerConfig(logger)
	if a.APIKey != "resolved-key" {
		t.Errorf("analyzer APIKey = %q", a.APIKey)
	}

	cfg.Analysis.Enabled = false
	if got := cfg.AnalyzerConfig(logger); got.APIKey != "" {
		t.Errorf("disabled analyzer APIKey = %q, want empty", got.APIKey)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "# Lectern configuration") {
		t.Error("comment header missing")
	}
	// Secrets stay as env references on disk.
	if !strings.Contains(text, "${ESV_API_KEY}") {
		t.Error("ESV key placeholder missing")
	}
	if !strings.Contains(text, "main_file: main.tex") {
		t.Errorf("resolve section missing:\n%s", text)
	}

	// Written file round-trips back to the defaults.
	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("written config does not parse: %v", err)
	}
	if parsed.ESV.BaseURL != DefaultConfig().ESV.BaseURL {
		t.Errorf("round-tripped ESV.BaseURL = %q", parsed.ESV.BaseURL)
	}
	if parsed.Resolve.MaxConcurrentFetches != 4 {
		t.Errorf("round-tripped MaxConcurrentFetches = %d", parsed.Resolve.MaxConcurrentFetches)
	}
}
