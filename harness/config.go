package harness

import (
	"github.com/probelab/uiprobe/harness/internal/config"
)

// Config is the top-level harness configuration. Re-exported from internal.
type Config = config.Config

// TargetConfig identifies the deployment under test.
type TargetConfig = config.TargetConfig

// BrowserConfig controls the browser session.
type BrowserConfig = config.BrowserConfig

// RunConfig bounds the polling loops of a run.
type RunConfig = config.RunConfig

// ReportConfig controls the report sinks.
type ReportConfig = config.ReportConfig

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	return config.LoadFile(path)
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return config.Default()
}
