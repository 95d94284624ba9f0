// Package config loads corpreport configuration from YAML files with
// defaults suitable for running against the public GigaChat endpoints.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigTooLarge = errors.New("config file exceeds maximum size")
)

// maxConfigSize caps config input to prevent memory exhaustion.
const maxConfigSize = 1 << 20 // 1MB

// Config holds all settings for report generation.
type Config struct {
	GigaChat GigaChatConfig `yaml:"gigachat"`
	News     NewsConfig     `yaml:"news"`
	Report   ReportConfig   `yaml:"report"`
}

// GigaChatConfig defines LLM endpoint settings. Credentials normally come
// from the environment; putting them in a config file is supported for
// development setups.
type GigaChatConfig struct {
	ClientID     string  `yaml:"clientID"`
	ClientSecret string  `yaml:"clientSecret"`
	Scope        string  `yaml:"scope"`
	TokenURL     string  `yaml:"tokenURL"`
	ChatURL      string  `yaml:"chatURL"`
	Model        string  `yaml:"model"`
	Temperature  float64 `yaml:"temperature"`
	MaxTokens    int     `yaml:"maxTokens"`
	InsecureTLS  bool    `yaml:"insecureTLS"`
}

// NewsConfig defines news retrieval and summarization settings.
type NewsConfig struct {
	MaxArticles      int  `yaml:"maxArticles"`      // per-source cap (default 30)
	FetchContent     bool `yaml:"fetchContent"`     // fetch full article bodies
	Workers          int  `yaml:"workers"`          // concurrent article fetches
	SummarySentences int  `yaml:"summarySentences"` // extractive summary size
}

// ReportConfig defines output settings.
type ReportConfig struct {
	OutputHTML string `yaml:"outputHTML"` // default report.html
	OutputTXT  string `yaml:"outputTXT"`  // default report_raw.txt
	ExtraCSS   string `yaml:"extraCSS"`   // path to CSS appended to the shell
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		News: NewsConfig{
			MaxArticles:      30,
			FetchContent:     true,
			SummarySentences: 6,
		},
		Report: ReportConfig{
			OutputHTML: "report.html",
			OutputTXT:  "report_raw.txt",
		},
	}
}

// LoadConfig reads and parses a YAML config file. Unknown fields are
// rejected to catch typos early.
func LoadConfig(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrConfigTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from the user's own flag
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// SearchPaths lists the locations probed when no explicit config path is
// given, in priority order.
func SearchPaths() []string {
	paths := []string{"corpreport.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "corpreport", "config.yaml"))
	}
	return paths
}

// Discover loads the first config found in SearchPaths, or the defaults
// when none exists.
func Discover() (*Config, error) {
	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}
	return DefaultConfig(), nil
}
