// Package config handles uiprobe harness configuration from YAML files.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level harness configuration.
type Config struct {
	Target  TargetConfig  `yaml:"target"`
	Browser BrowserConfig `yaml:"browser"`
	Run     RunConfig     `yaml:"run"`
	Report  ReportConfig  `yaml:"report"`
}

// TargetConfig identifies the deployment under test.
type TargetConfig struct {
	URL           string `yaml:"url"`
	CataloguePath string `yaml:"catalogue"`
	SelectorsPath string `yaml:"selectors"`
}

// BrowserConfig controls the browser session.
type BrowserConfig struct {
	// Headful runs a visible browser window; headless is the default.
	Headful bool `yaml:"headful"`
	// Remote is the websocket URL of an existing Chrome instance.
	// Empty = launch a local one.
	Remote string `yaml:"remote"`
}

// RunConfig bounds the polling loops of a run.
type RunConfig struct {
	MaxRetries   int           `yaml:"max_retries"`
	LoadTimeout  time.Duration `yaml:"load_timeout"`
	LoadBackoff  time.Duration `yaml:"load_backoff"`
	MaxPolls     int           `yaml:"max_polls"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// ReportConfig controls the report sinks.
type ReportConfig struct {
	// DBPath persists reports to an SQLite file when set.
	DBPath string `yaml:"db_path"`
	// JSONLines emits reports as JSON lines on stdout.
	JSONLines bool `yaml:"json_lines"`
}

// LoadFile reads a YAML configuration file and applies defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields with the stock values.
func (c *Config) ApplyDefaults() {
	if c.Target.URL == "" {
		c.Target.URL = "https://qlever.cs.uni-freiburg.de"
	}
	if c.Target.CataloguePath == "" {
		c.Target.CataloguePath = "end2end-testcases.json"
	}
	if c.Run.MaxRetries <= 0 {
		c.Run.MaxRetries = 5
	}
	if c.Run.LoadTimeout <= 0 {
		c.Run.LoadTimeout = 5 * time.Second
	}
	if c.Run.LoadBackoff <= 0 {
		c.Run.LoadBackoff = 500 * time.Millisecond
	}
	if c.Run.MaxPolls <= 0 {
		c.Run.MaxPolls = 10
	}
	if c.Run.PollInterval <= 0 {
		c.Run.PollInterval = 500 * time.Millisecond
	}
}
