// Package config loads pathway settings: built-in defaults, then an
// optional YAML file, then PATHWAY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when --config is not given.
const DefaultFile = "pathway.yaml"

// Delays are the simulated processing times of each phase.
type Delays struct {
	Upload      time.Duration `yaml:"upload" env:"UPLOAD"`
	Analyze     time.Duration `yaml:"analyze" env:"ANALYZE"`
	Reply       time.Duration `yaml:"reply" env:"REPLY"`
	PlanConfirm time.Duration `yaml:"plan_confirm" env:"PLAN_CONFIRM"`
	Finalize    time.Duration `yaml:"finalize" env:"FINALIZE"`
}

// Config is the effective configuration.
type Config struct {
	Delays      Delays `yaml:"delays" envPrefix:"DELAY_"`
	SessionFile string `yaml:"session_file" env:"SESSION_FILE"`
	SampleDir   string `yaml:"sample_dir" env:"SAMPLE_DIR"`
	LogFile     string `yaml:"log_file" env:"LOG_FILE"`
	Debug       bool   `yaml:"debug" env:"DEBUG"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Delays: Delays{
			Upload:      1500 * time.Millisecond,
			Analyze:     2 * time.Second,
			Reply:       time.Second,
			PlanConfirm: time.Second,
			Finalize:    2 * time.Second,
		},
		SessionFile: ".pathway-session.yaml",
		SampleDir:   "pathway-sample",
		LogFile:     "pathway-debug.log",
	}
}

// Load builds the configuration. A missing file is not an error.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := afero.ReadFile(fs, path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PATHWAY_"}); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(fs afero.Fs, path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects negative delays.
func (c Config) Validate() error {
	delays := []struct {
		name string
		d    time.Duration
	}{
		{"upload", c.Delays.Upload},
		{"analyze", c.Delays.Analyze},
		{"reply", c.Delays.Reply},
		{"plan_confirm", c.Delays.PlanConfirm},
		{"finalize", c.Delays.Finalize},
	}
	for _, dl := range delays {
		if dl.d < 0 {
			return fmt.Errorf("delays.%s must not be negative, got %s", dl.name, dl.d)
		}
	}
	return nil
}
