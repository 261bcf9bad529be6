package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ecohspeech/internal/app/convert"
)

// Duration wraps time.Duration so yaml files can say "30s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Tuning carries the heuristic knobs of the conversion pipeline. All values
// have working defaults; a tuning file overrides only what it names.
type Tuning struct {
	AttemptTimeout     Duration `yaml:"attempt_timeout"`
	MinByteSize        int64    `yaml:"min_byte_size"`
	MinDurationSeconds float64  `yaml:"min_duration_seconds"`
	MinFrameCount      int64    `yaml:"min_frame_count"`
	DefaultLanguage    string   `yaml:"default_language"`
}

// DefaultTuning mirrors the built-in pipeline defaults.
func DefaultTuning() Tuning {
	limits := convert.DefaultLimits()
	return Tuning{
		AttemptTimeout:     Duration(30 * time.Second),
		MinByteSize:        limits.MinByteSize,
		MinDurationSeconds: limits.MinDurationSeconds,
		MinFrameCount:      limits.MinFrameCount,
		DefaultLanguage:    "es-CL",
	}
}

// LoadTuning reads a yaml tuning file, layering it over the defaults.
// An empty path returns the defaults unchanged.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tuning, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return tuning, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	if err := tuning.validate(); err != nil {
		return tuning, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return tuning, nil
}

// Limits converts the tuning into validator thresholds.
func (t Tuning) Limits() convert.Limits {
	return convert.Limits{
		MinByteSize:        t.MinByteSize,
		MinDurationSeconds: t.MinDurationSeconds,
		MinFrameCount:      t.MinFrameCount,
	}
}

func (t Tuning) validate() error {
	if t.AttemptTimeout <= 0 {
		return fmt.Errorf("attempt_timeout must be positive, got %s", t.AttemptTimeout.Std())
	}
	if t.MinByteSize < 0 || t.MinDurationSeconds < 0 || t.MinFrameCount < 0 {
		return fmt.Errorf("thresholds must not be negative")
	}
	if t.DefaultLanguage == "" {
		return fmt.Errorf("default_language must not be empty")
	}
	return nil
}
