package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PATHECHO_PORT",
		"PATHECHO_METRICS_ADDR",
		"PATHECHO_BUFFER_SIZE",
		"PATHECHO_MAX_PATH_LEN",
		"PATHECHO_READ_TIMEOUT_MS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("default port: got %d, want 8080", cfg.Port)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("default metrics_addr: got %q, want empty", cfg.MetricsAddr)
	}
	if cfg.BufferSize != 1024 {
		t.Errorf("default buffer_size: got %d, want 1024", cfg.BufferSize)
	}
	if cfg.MaxPathLen != 256 {
		t.Errorf("default max_path_len: got %d, want 256", cfg.MaxPathLen)
	}
	if cfg.ReadTimeoutMs != 10000 {
		t.Errorf("default read_timeout_ms: got %d, want 10000", cfg.ReadTimeoutMs)
	}
}

func TestLoadFromYAML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	content := `port: 9090
metrics_addr: ":9100"
buffer_size: 4096
max_path_len: 512
read_timeout_ms: 2500
`
	if err := os.WriteFile(yamlPath, []byte(content), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"port", cfg.Port, 9090},
		{"metrics_addr", cfg.MetricsAddr, ":9100"},
		{"buffer_size", cfg.BufferSize, 4096},
		{"max_path_len", cfg.MaxPathLen, 512},
		{"read_timeout_ms", cfg.ReadTimeoutMs, 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	content := `port: 9090
buffer_size: 2048
`
	if err := os.WriteFile(yamlPath, []byte(content), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	t.Setenv("PATHECHO_PORT", "7777")
	t.Setenv("PATHECHO_METRICS_ADDR", ":9999")
	t.Setenv("PATHECHO_BUFFER_SIZE", "8192")
	t.Setenv("PATHECHO_MAX_PATH_LEN", "128")
	t.Setenv("PATHECHO_READ_TIMEOUT_MS", "0")

	cfg, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"port from env", cfg.Port, 7777},
		{"metrics_addr from env", cfg.MetricsAddr, ":9999"},
		{"buffer_size from env", cfg.BufferSize, 8192},
		{"max_path_len from env", cfg.MaxPathLen, 128},
		{"read_timeout_ms from env", cfg.ReadTimeoutMs, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(yamlPath, []byte("{{invalid"), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	_, err := Load(yamlPath)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadValidation(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
	}{
		{"port too low", "port: 0\n"},
		{"port too high", "port: 70000\n"},
		{"buffer too small", "buffer_size: 512\n"},
		{"max_path_len too small", "max_path_len: 8\n"},
		{"max_path_len above buffer", "buffer_size: 1024\nmax_path_len: 2048\n"},
		{"negative read timeout", "read_timeout_ms: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			yamlPath := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(yamlPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write yaml: %v", err)
			}

			if _, err := Load(yamlPath); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadInvalidEnvValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATHECHO_PORT", "not-a-number")

	_, err := Load("")
	if err == nil {
		t.Error("expected error for non-numeric PATHECHO_PORT, got nil")
	}
}
