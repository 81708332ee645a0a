package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/viper"
)

// ProjectFile is the per-directory config file name
const ProjectFile = ".taskflow.json"

// EnvPrefix prefixes every environment override, e.g. TASKFLOW_AI_MODEL
const EnvPrefix = "TASKFLOW"

// Config represents the full taskflow configuration
type Config struct {
	AI    AIConfig    `json:"ai" mapstructure:"ai"`
	Board BoardConfig `json:"board" mapstructure:"board"`
	UI    UIConfig    `json:"ui" mapstructure:"ui"`
	Log   LogConfig   `json:"log" mapstructure:"log"`
}

// AIConfig contains settings for the Gemini planning gateway
type AIConfig struct {
	Model      string `json:"model" mapstructure:"model"`
	BaseURL    string `json:"baseURL" mapstructure:"baseURL"`
	APIKey     string `json:"apiKey,omitempty" mapstructure:"apiKey"`
	TimeoutMs  int    `json:"timeoutMs" mapstructure:"timeoutMs"`
	MaxRetries int    `json:"maxRetries" mapstructure:"maxRetries"`
}

// Timeout returns the per-request deadline
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Enabled reports whether an API key is available
func (c AIConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// BoardConfig contains task store settings
type BoardConfig struct {
	StrictIDs bool `json:"strictIDs" mapstructure:"strictIDs"`
	SeedDemo  bool `json:"seedDemo" mapstructure:"seedDemo"`
}

// UIConfig contains TUI settings
type UIConfig struct {
	ToastSeconds int  `json:"toastSeconds" mapstructure:"toastSeconds"`
	Mouse        bool `json:"mouse" mapstructure:"mouse"`
}

// ToastDuration returns how long notifications stay on screen
func (c UIConfig) ToastDuration() time.Duration {
	return time.Duration(c.ToastSeconds) * time.Second
}

// LogConfig contains logging settings
type LogConfig struct {
	File  string `json:"file" mapstructure:"file"`
	Level string `json:"level" mapstructure:"level"`
	// Traces writes AI request spans to the log at debug level
	Traces bool `json:"traces" mapstructure:"traces"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			Model:      "gemini-2.5-flash",
			BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
			TimeoutMs:  30000,
			MaxRetries: 2,
		},
		Board: BoardConfig{
			StrictIDs: false,
			SeedDemo:  true,
		},
		UI: UIConfig{
			ToastSeconds: 3,
			Mouse:        true,
		},
		Log: LogConfig{
			File:  filepath.Join(HomeDir(), "taskflow.log"),
			Level: "info",
		},
	}
}

// HomeDir returns ~/.taskflow
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".taskflow")
}

// GlobalConfigPath returns the path to the user-wide config file
func GlobalConfigPath() string {
	return filepath.Join(HomeDir(), "config.json")
}

// LoadConfig loads configuration with priority:
// 1. Environment (TASKFLOW_*, GEMINI_API_KEY for the key)
// 2. .taskflow.json in projectPath
// 3. ~/.taskflow/config.json
// 4. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	return load([]string{GlobalConfigPath(), filepath.Join(projectPath, ProjectFile)}, false)
}

// LoadFile loads configuration from a single explicit file, which must exist.
// Environment overrides still apply.
func LoadFile(path string) (*Config, error) {
	return load([]string{path}, true)
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}

func load(paths []string, required bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v, DefaultConfig())

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if required || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.apiKey", EnvPrefix+"_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return MergeWithDefaults(&cfg), nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.baseURL", d.AI.BaseURL)
	v.SetDefault("ai.apiKey", d.AI.APIKey)
	v.SetDefault("ai.timeoutMs", d.AI.TimeoutMs)
	v.SetDefault("ai.maxRetries", d.AI.MaxRetries)
	v.SetDefault("board.strictIDs", d.Board.StrictIDs)
	v.SetDefault("board.seedDemo", d.Board.SeedDemo)
	v.SetDefault("ui.toastSeconds", d.UI.ToastSeconds)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.traces", d.Log.Traces)
}

// SaveConfig writes configuration as JSON. The API key is never written.
func SaveConfig(cfg *Config, path string) error {
	out := *cfg
	out.AI.APIKey = ""

	data, err := sonic.ConfigStd.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Merge AI config
	if cfg.AI.Model == "" {
		cfg.AI.Model = defaults.AI.Model
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = defaults.AI.BaseURL
	}
	cfg.AI.BaseURL = strings.TrimRight(cfg.AI.BaseURL, "/")
	if cfg.AI.TimeoutMs <= 0 {
		cfg.AI.TimeoutMs = defaults.AI.TimeoutMs
	}
	if cfg.AI.MaxRetries < 0 {
		cfg.AI.MaxRetries = 0
	}

	// Merge UI config
	if cfg.UI.ToastSeconds <= 0 {
		cfg.UI.ToastSeconds = defaults.UI.ToastSeconds
	}

	// Merge Log config
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return cfg
}
