// Package config loads a zircoc.yaml project/target configuration, grounded
// on the teacher's internal/eval_harness.BenchmarkSpec shape: struct tags +
// a LoadXxx(path) (*Xxx, error) constructor plus field validation, backed by
// gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OptLevel is one of the three named optimization levels that spec.md §6's
// `-O` flag values map onto (by name, or by number via ParseOptLevel).
type OptLevel string

const (
	OptNone       OptLevel = "none"
	OptDefault    OptLevel = "default"
	OptAggressive OptLevel = "aggressive"
)

// ParseOptLevel normalizes `-O 0/1/2/3` and `-O none/default/aggressive`
// to the same OptLevel set.
func ParseOptLevel(s string) (OptLevel, error) {
	switch s {
	case "0", "none":
		return OptNone, nil
	case "1", "2", "default":
		return OptDefault, nil
	case "3", "aggressive":
		return OptAggressive, nil
	default:
		return "", fmt.Errorf("unrecognized optimization level %q", s)
	}
}

// Config is the resolved `zircoc.yaml` project/target configuration.
type Config struct {
	Target       string   `yaml:"target"`
	CPU          string   `yaml:"cpu"`
	OptLevel     OptLevel `yaml:"opt_level"`
	DebugInfo    bool     `yaml:"debug_info"`
	WarnAsError  []string `yaml:"warn_as_error"`
	OutputDir    string   `yaml:"output_dir"`
}

// Default returns the configuration used when no zircoc.yaml is present.
func Default() *Config {
	return &Config{
		Target:    "native",
		OptLevel:  OptDefault,
		OutputDir: ".",
	}
}

// Load reads and validates a zircoc.yaml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse zircoc.yaml: %w", err)
	}

	if cfg.OptLevel == "" {
		cfg.OptLevel = OptDefault
	}
	if _, err := ParseOptLevel(string(cfg.OptLevel)); err != nil {
		return nil, fmt.Errorf("zircoc.yaml: %w", err)
	}
	if cfg.Target == "" {
		return nil, fmt.Errorf("zircoc.yaml missing required field: target")
	}

	return cfg, nil
}

// WarnsAsError reports whether a diagnostic code has been promoted to an
// error by the config's warn_as_error list.
func (c *Config) WarnsAsError(code string) bool {
	for _, w := range c.WarnAsError {
		if w == code {
			return true
		}
	}
	return false
}
