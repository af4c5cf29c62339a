package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TODOS_BASE_URL", "TODOS_LOG_LEVEL", "TODOS_LOG_FORMAT", "TODOS_TIMEOUT", "TODOS_CONFIG_DIR"} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.Timeout)
	}
	if cfg.Dir != dir {
		t.Fatalf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if got, want := cfg.SessionPath(), filepath.Join(dir, SessionFileName); got != want {
		t.Fatalf("SessionPath = %q, want %q", got, want)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	body := `
base_url = "http://file.example/todo"
log_level = "debug"
timeout = "3s"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://file.example/todo" {
		t.Fatalf("expected file base url, got %q", cfg.BaseURL)
	}
	if cfg.LogLevel != "debug" || cfg.Timeout != 3*time.Second {
		t.Fatalf("expected file log level/timeout, got %q/%s", cfg.LogLevel, cfg.Timeout)
	}

	t.Setenv("TODOS_BASE_URL", "http://env.example/todo")
	t.Setenv("TODOS_TIMEOUT", "250ms")
	cfg, err = Load(dir)
	if err != nil {
		t.Fatalf("Load with env: %v", err)
	}
	if cfg.BaseURL != "http://env.example/todo" {
		t.Fatalf("expected env to override file, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Fatalf("expected env timeout, got %s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected file log level to survive, got %q", cfg.LogLevel)
	}
}

func TestLoad_RejectsBadBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOS_BASE_URL", "ftp://nope")
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected error for non-http base url")
	}
}

func TestLoad_RejectsBadTimeoutEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOS_TIMEOUT", "soon")
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected error for unparsable TODOS_TIMEOUT")
	}
}

func TestDefaultDir_EnvOverride(t *testing.T) {
	t.Setenv("TODOS_CONFIG_DIR", "/tmp/todos-test")
	d, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir: %v", err)
	}
	if d != "/tmp/todos-test" {
		t.Fatalf("expected override dir, got %q", d)
	}
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("expected nil for missing .env, got %v", err)
	}
}

func TestLoadDotEnv_SetsUnsetVars(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("TODOS_LOG_FORMAT")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TODOS_LOG_FORMAT=json\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("TODOS_LOG_FORMAT") })
	if got := os.Getenv("TODOS_LOG_FORMAT"); got != "json" {
		t.Fatalf("expected TODOS_LOG_FORMAT=json, got %q", got)
	}
}
