package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "BLACKBARS_CONFIG"

type Config struct {
	Target  TargetConfig  `yaml:"target"`
	Poll    PollConfig    `yaml:"poll"`
	Logging LoggingConfig `yaml:"logging"`
}

type TargetConfig struct {
	// Title is the exact window title to track.
	Title string `yaml:"title"`
}

type PollConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMS) * time.Millisecond
}

func DefaultConfig() Config {
	return Config{
		Target: TargetConfig{
			Title: "League of Legends (TM) Client",
		},
		Poll: PollConfig{
			IntervalMS: 100,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Dir:        defaultLogDir(),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   true,
		},
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(configDir, "blackbars"), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadResult carries the parsed config and where it came from.
type LoadResult struct {
	Config Config
	Source SourceSelection
}

// Load reads the config from disk, falling back to defaults.
func Load() (Config, error) {
	result, err := LoadWithSource()
	return result.Config, err
}

var resolveConfigSource = ResolveConfigSource

// LoadWithSource resolves the config path (env override first), parses
// the file if present, and normalizes the result. A resolution failure
// falls back to defaults, with the reason recorded in the selection.
func LoadWithSource() (LoadResult, error) {
	cfg := DefaultConfig()

	source, err := resolveConfigSource(ResolveOptions{EnvPath: os.Getenv(EnvConfigPath)})
	if err != nil {
		source = SourceSelection{
			Type:   SourceDefaults,
			Reason: fmt.Sprintf("config source resolution failed: %v", err),
		}
		return LoadResult{Config: cfg, Source: source}, nil
	}

	if source.Type == SourceDefaults {
		return LoadResult{Config: cfg, Source: source}, nil
	}

	data, err := os.ReadFile(source.Path)
	if err != nil {
		if os.IsNotExist(err) {
			source.Type = SourceDefaults
			return LoadResult{Config: cfg, Source: source}, nil
		}
		return LoadResult{Config: cfg, Source: source}, fmt.Errorf("read config: %w", err)
	}

	cfg, err = LoadFromBytes(data)
	if err != nil {
		return LoadResult{Config: cfg, Source: source}, err
	}

	return LoadResult{Config: cfg, Source: source}, nil
}

// LoadFromBytes parses config data layered over defaults.
func LoadFromBytes(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return Normalize(cfg), nil
}

// Normalize replaces missing or out-of-range values with defaults so a
// partially filled config file still yields a runnable configuration.
func Normalize(cfg Config) Config {
	defaults := DefaultConfig()

	if cfg.Target.Title == "" {
		cfg.Target.Title = defaults.Target.Title
	}
	if cfg.Poll.IntervalMS <= 0 {
		cfg.Poll.IntervalMS = defaults.Poll.IntervalMS
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		cfg.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxBackups <= 0 {
		cfg.Logging.MaxBackups = defaults.Logging.MaxBackups
	}
	cfg.Logging.Dir = normalizeLoggingDir(cfg.Logging.Dir)

	return cfg
}

// Init creates a default config file if one doesn't exist.
func Init() (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config already exists at %s", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return path, nil
}
