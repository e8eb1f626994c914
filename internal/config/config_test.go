package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withConfigHome points XDG_CONFIG_HOME at a temp directory and resets
// the config cache around the test.
func withConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	ResetCache()
	t.Cleanup(ResetCache)
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, ConfigDir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	withConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if len(cfg.Providers) != 3 || cfg.Providers[0] != "semanticscholar" {
		t.Errorf("Providers = %v", cfg.Providers)
	}
	if cfg.Thresholds.Accept != 0.6 {
		t.Errorf("Accept = %g, want 0.6", cfg.Thresholds.Accept)
	}
}

func TestLoadMergesFile(t *testing.T) {
	dir := withConfigHome(t)
	writeConfig(t, dir, `
providers: [localdb, semanticscholar]
workers: 8
thresholds:
  accept: 0.7
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if len(cfg.Providers) != 2 || cfg.Providers[0] != "localdb" {
		t.Errorf("Providers = %v", cfg.Providers)
	}
	if cfg.Thresholds.Accept != 0.7 {
		t.Errorf("Accept = %g, want 0.7", cfg.Thresholds.Accept)
	}
	// Unset fields keep their defaults.
	if cfg.Thresholds.Floor != 0.5 {
		t.Errorf("Floor = %g, want 0.5", cfg.Thresholds.Floor)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := withConfigHome(t)
	writeConfig(t, dir, `s2_api_key: from-file`)
	t.Setenv("S2_API_KEY", "from-env")
	t.Setenv("REFCHECK_WORKERS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.S2APIKey != "from-env" {
		t.Errorf("S2APIKey = %q, want env override", cfg.S2APIKey)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	dir := withConfigHome(t)
	writeConfig(t, dir, `providers: [crossref]`)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLoadRejectsBadThresholds(t *testing.T) {
	dir := withConfigHome(t)
	writeConfig(t, dir, `
thresholds:
  floor: 0.9
  accept: 0.6
`)

	if _, err := Load(); err == nil {
		t.Fatal("expected error when floor exceeds accept")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := withConfigHome(t)

	cfg := Default()
	cfg.Mailto = "user@example.org"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ResetCache()
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Mailto != "user@example.org" {
		t.Errorf("Mailto = %q", loaded.Mailto)
	}

	if _, err := os.Stat(filepath.Join(dir, ConfigDir, ConfigFile)); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandTilde("~/papers.db"); got != filepath.Join(home, "papers.db") {
		t.Errorf("ExpandTilde = %q", got)
	}
	if got := ExpandTilde("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandTilde changed absolute path: %q", got)
	}
}
