// Package config resolves settings from defaults, a TOML file, .env,
// environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// AppName names the config and data directories.
	AppName = "tada"

	// ConfigFileName is looked up in the config directory.
	ConfigFileName = "config.toml"

	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultCategories are offered when the config names none.
var DefaultCategories = []string{"Personal", "Work", "Home", "Shopping"}

// Config holds resolved settings.
type Config struct {
	DataDir         string   `toml:"data_dir"`
	Categories      []string `toml:"categories"`
	DefaultCategory string   `toml:"default_category"`
	AllowEmptyText  bool     `toml:"allow_empty_text"`
	LogLevel        string   `toml:"log_level"`
	LogFormat       string   `toml:"log_format"`
	LogFile         string   `toml:"log_file"`
	NoColor         bool     `toml:"no_color"`

	// Flag-only settings.
	Group      bool   `toml:"-"`
	ConfigFile string `toml:"-"`
}

type flagValues struct {
	configFile, dataDir, logLevel, logFormat, logFile string
	noColor, group, allowEmpty                        bool
}

// Load registers the global flags on fs, parses args and resolves the
// config. It returns the arguments left after the flags.
func Load(fs *flag.FlagSet, args []string) (*Config, []string, error) {
	fv := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := &Config{}
	setDefaults(cfg)

	path := fv.configFile
	explicit := path != ""
	if !explicit {
		path = filepath.Join(DefaultConfigDir(), ConfigFileName)
	}
	if err := loadFile(cfg, path, explicit); err != nil {
		return nil, nil, err
	}

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, nil, err
	}
	if err := loadFromEnv(cfg); err != nil {
		return nil, nil, err
	}
	applyFlags(cfg, fv, set)

	if err := finalize(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

func registerFlags(fs *flag.FlagSet) *flagValues {
	fv := &flagValues{}
	fs.StringVar(&fv.configFile, "config", "", "path to config.toml")
	fs.StringVar(&fv.dataDir, "data-dir", "", "directory holding storage.json")
	fs.StringVar(&fv.logLevel, "log-level", "", "debug|info|warn|error")
	fs.StringVar(&fv.logFormat, "log-format", "", "text|json|logfmt")
	fs.StringVar(&fv.logFile, "log-file", "", "write logs to this file (rotated)")
	fs.BoolVar(&fv.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&fv.group, "group", false, "group output by pending/done")
	fs.BoolVar(&fv.allowEmpty, "allow-empty", false, "accept tasks with empty text")
	return fv
}

func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir()
	cfg.Categories = append([]string(nil), DefaultCategories...)
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// loadFile merges a TOML file into cfg. A missing file is only an error
// when the user named it.
func loadFile(cfg *Config, path string, required bool) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	cfg.ConfigFile = path
	return nil
}

// loadDotEnv exports variables from path without overriding the real
// environment. A missing file is fine.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TADA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TADA_CATEGORIES"); v != "" {
		cfg.Categories = strings.Split(v, ",")
	}
	if v := os.Getenv("TADA_DEFAULT_CATEGORY"); v != "" {
		cfg.DefaultCategory = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TADA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TADA_ALLOW_EMPTY_TEXT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TADA_ALLOW_EMPTY_TEXT: %w", err)
		}
		cfg.AllowEmptyText = b
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TADA_NO_COLOR") != "" {
		cfg.NoColor = true
	}
	return nil
}

func applyFlags(cfg *Config, fv *flagValues, set map[string]bool) {
	if set["data-dir"] {
		cfg.DataDir = fv.dataDir
	}
	if set["log-level"] {
		cfg.LogLevel = fv.logLevel
	}
	if set["log-format"] {
		cfg.LogFormat = fv.logFormat
	}
	if set["log-file"] {
		cfg.LogFile = fv.logFile
	}
	if set["no-color"] {
		cfg.NoColor = fv.noColor
	}
	if set["allow-empty"] {
		cfg.AllowEmptyText = fv.allowEmpty
	}
	cfg.Group = fv.group
}

func finalize(cfg *Config) error {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: want debug, info, warn or error", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch cfg.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q: want text, json or logfmt", cfg.LogFormat)
	}

	cfg.Categories = cleanCategories(cfg.Categories)
	if len(cfg.Categories) == 0 {
		return fmt.Errorf("categories: at least one category is required")
	}
	cfg.DefaultCategory = strings.TrimSpace(cfg.DefaultCategory)
	if cfg.DefaultCategory == "" || !cfg.HasCategory(cfg.DefaultCategory) {
		cfg.DefaultCategory = cfg.Categories[0]
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir is empty")
	}
	return nil
}

func cleanCategories(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// HasCategory reports whether name is a configured category.
func (c *Config) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}

// DefaultConfigDir uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}
