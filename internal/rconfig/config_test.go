package rconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultGlobalConfig(t *testing.T) {
	cfg := DefaultGlobalConfig()
	if cfg.Workers != 8 {
		t.Errorf("expected default workers 8, got %d", cfg.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Logging.Level)
	}
	if len(cfg.DefaultPlatformTags) != 2 {
		t.Errorf("expected 2 default platform tags, got %d", len(cfg.DefaultPlatformTags))
	}
}

func TestLoadGlobalConfigMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected defaults when config file is missing, got workers=%d", cfg.Workers)
	}
}

func TestLoadGlobalConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadGlobalConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CacheDir != "./cache" {
		t.Errorf("expected default cache dir, got %q", cfg.CacheDir)
	}
}

func TestLoadAndSaveGlobalConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultGlobalConfig()
	cfg.Workers = 4
	cfg.DefaultPlatformTags = []string{"unix", "darwin"}
	if err := cfg.SaveGlobalConfig(path); err != nil {
		t.Fatalf("SaveGlobalConfig: %v", err)
	}

	loaded, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if loaded.Workers != 4 {
		t.Errorf("expected workers=4 after round trip, got %d", loaded.Workers)
	}
	if len(loaded.DefaultPlatformTags) != 2 || loaded.DefaultPlatformTags[1] != "darwin" {
		t.Errorf("expected platform tags to round trip, got %v", loaded.DefaultPlatformTags)
	}
}

func TestLoadGlobalConfigUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("workers = 4"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadGlobalConfig(path); err == nil {
		t.Error("expected error for unsupported config extension")
	}
}

func TestValidateRejectsTooManyWorkers(t *testing.T) {
	cfg := DefaultGlobalConfig()
	cfg.Workers = 1000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for excessive worker count")
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := DefaultGlobalConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestValidateFillsZeroWorkers(t *testing.T) {
	cfg := &GlobalConfig{Logging: LoggingConfig{Level: "info"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected zero workers to default to 8, got %d", cfg.Workers)
	}
}

func TestGetConfigPathsNonEmpty(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) == 0 {
		t.Error("expected at least one candidate config path")
	}
}
