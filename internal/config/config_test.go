package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Fatalf("Addr=%q, want %q", cfg.Server.Addr, ":8000")
	}
	if cfg.Auth.TokenTTLMinutes != 30 {
		t.Fatalf("TokenTTLMinutes=%d, want 30", cfg.Auth.TokenTTLMinutes)
	}
	if cfg.Agent.HistoryLimit != 10 || cfg.Agent.MaxToolCalls != 16 {
		t.Fatalf("agent defaults unexpected: %+v", cfg.Agent)
	}
	if cfg.Provider.BaseURL == "" || cfg.Provider.Model == "" {
		t.Fatalf("provider defaults unexpected: %+v", cfg.Provider)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	content := `{
	// local overrides
	"server": {"addr": ":9000"},
	"auth": {"secret": "file-secret", "token_ttl_minutes": 60},
	"storage": {"db_path": "/tmp/other.db"}
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("Addr=%q, want %q", cfg.Server.Addr, ":9000")
	}
	if cfg.Auth.Secret != "file-secret" || cfg.Auth.TokenTTLMinutes != 60 {
		t.Fatalf("auth unexpected: %+v", cfg.Auth)
	}
	if cfg.Storage.DBPath != "/tmp/other.db" {
		t.Fatalf("DBPath=%q", cfg.Storage.DBPath)
	}
	// Untouched sections keep their defaults.
	if cfg.Agent.HistoryLimit != 10 {
		t.Fatalf("HistoryLimit=%d, want 10", cfg.Agent.HistoryLimit)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server":{"addr":":9000"}}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("AURORA_ADDR", ":7000")
	t.Setenv("AURORA_SECRET_KEY", "env-secret")
	t.Setenv("AURORA_TOKEN_TTL_MINUTES", "15")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("Addr=%q, want %q", cfg.Server.Addr, ":7000")
	}
	if cfg.Auth.Secret != "env-secret" || cfg.Auth.TokenTTLMinutes != 15 {
		t.Fatalf("auth unexpected: %+v", cfg.Auth)
	}
}

func TestStripJSONComments(t *testing.T) {
	in := `{
	// line comment
	"a": "value // not a comment",
	/* block
	   comment */
	"b": 2
}`
	out := string(stripJSONComments([]byte(in)))
	if want := `"value // not a comment"`; !strings.Contains(out, want) {
		t.Fatalf("string content damaged: %s", out)
	}
	if strings.Contains(out, "line comment") || strings.Contains(out, "block") {
		t.Fatalf("comments survived: %s", out)
	}
}
