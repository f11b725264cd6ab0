package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// isolate points every lookup at temp dirs and clears TADA_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{
		"TADA_DATA_DIR", "TADA_CATEGORIES", "TADA_DEFAULT_CATEGORY",
		"TADA_LOG_LEVEL", "TADA_LOG_FORMAT", "TADA_LOG_FILE",
		"TADA_ALLOW_EMPTY_TEXT", "TADA_NO_COLOR", "NO_COLOR",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func load(t *testing.T, args ...string) (*Config, []string, error) {
	t.Helper()
	fs := flag.NewFlagSet("tada", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return Load(fs, args)
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)
	cfg, rest, err := load(t, "ls")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(dir, "data", AppName); cfg.DataDir != want {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, want)
	}
	if !reflect.DeepEqual(cfg.Categories, DefaultCategories) {
		t.Errorf("Categories: got %v, want %v", cfg.Categories, DefaultCategories)
	}
	if cfg.DefaultCategory != DefaultCategories[0] {
		t.Errorf("DefaultCategory: got %q", cfg.DefaultCategory)
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("log: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.AllowEmptyText {
		t.Error("AllowEmptyText: got true, want false")
	}
	if !reflect.DeepEqual(rest, []string{"ls"}) {
		t.Errorf("rest: got %v", rest)
	}
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "config", AppName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
data_dir = "/tmp/tada-data"
categories = ["Errands", " Work ", "Errands", ""]
default_category = "Work"
allow_empty_text = true
log_level = "DEBUG"
`
	if err := os.WriteFile(filepath.Join(cfgDir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := load(t)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/tada-data" {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if want := []string{"Errands", "Work"}; !reflect.DeepEqual(cfg.Categories, want) {
		t.Errorf("Categories: got %v, want %v", cfg.Categories, want)
	}
	if cfg.DefaultCategory != "Work" {
		t.Errorf("DefaultCategory: got %q, want Work", cfg.DefaultCategory)
	}
	if !cfg.AllowEmptyText {
		t.Error("AllowEmptyText: got false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	dir := isolate(t)
	if _, _, err := load(t, "--config", filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load: want error for missing --config file")
	}
}

func TestPrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte(`log_level = "warn"`+"\n"+`data_dir = "/from/file"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TADA_DATA_DIR", "/from/env")
	t.Setenv("TADA_CATEGORIES", "A,B")
	t.Setenv("TADA_DEFAULT_CATEGORY", "Z")

	cfg, rest, err := load(t, "--config", path, "--log-level", "error", "--group", "add", "x")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/from/env" {
		t.Errorf("DataDir: got %q, want env value", cfg.DataDir)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want flag value", cfg.LogLevel)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(cfg.Categories, want) {
		t.Errorf("Categories: got %v", cfg.Categories)
	}
	if cfg.DefaultCategory != "A" {
		t.Errorf("DefaultCategory: got %q, want fallback A", cfg.DefaultCategory)
	}
	if !cfg.Group {
		t.Error("Group: got false")
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
	if !reflect.DeepEqual(rest, []string{"add", "x"}) {
		t.Errorf("rest: got %v", rest)
	}
}

func TestNoColorEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")
	cfg, _, err := load(t)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.NoColor {
		t.Error("NoColor: got false with NO_COLOR set")
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad level", nil, []string{"--log-level", "loud"}},
		{"bad format", nil, []string{"--log-format", "xml"}},
		{"bad bool", map[string]string{"TADA_ALLOW_EMPTY_TEXT": "maybe"}, nil},
		{"no categories", map[string]string{"TADA_CATEGORIES": " , "}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, _, err := load(t, tt.args...); err == nil {
				t.Error("Load: want error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TADA_DOTENV_PROBE=from-dotenv\nTADA_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TADA_LOG_LEVEL", "warn")
	t.Cleanup(func() { os.Unsetenv("TADA_DOTENV_PROBE") })

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
	if got := os.Getenv("TADA_DOTENV_PROBE"); got != "from-dotenv" {
		t.Errorf("probe: got %q", got)
	}
	if got := os.Getenv("TADA_LOG_LEVEL"); got != "warn" {
		t.Errorf(".env must not override the environment: got %q", got)
	}
	if err := loadDotEnv(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("missing .env: got %v, want nil", err)
	}
}
