// Package config loads grpagg settings from the environment and job
// definitions from YAML files.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/vegasq/grpagg/frame"
	"github.com/vegasq/grpagg/groupagg"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GRPAGG"

// Config holds process settings. Command line flags take precedence.
type Config struct {
	Format      string        `envconfig:"FORMAT" default:"jsonl" validate:"oneof=jsonl json csv table"`
	Limit       int           `envconfig:"LIMIT" default:"0" validate:"gte=0"`
	Concurrency int           `envconfig:"CONCURRENCY" default:"4" validate:"gte=1,lte=256"`
	Logging     LoggingConfig `envconfig:"LOG"`
}

// LoggingConfig configures internal/logger.
type LoggingConfig struct {
	Level string `envconfig:"LEVEL" default:"warn" validate:"oneof=trace debug info warn warning error fatal panic"`
	JSON  bool   `envconfig:"JSON" default:"false"`
}

var validate = validator.New()

// Load reads GRPAGG_* environment variables, applies defaults and validates
// the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Job describes one aggregation run:
//
//	input: data/sales-*.parquet
//	by: [shop]
//	agg:
//	  amount: [sum, mean]
//	  qty: max
//	merge: false
//	as_index: true
//	format: csv
//
// Agg keeps the column order of the file.
type Job struct {
	Input   string        `yaml:"input"`
	Sheet   string        `yaml:"sheet"`
	By      []string      `yaml:"by" validate:"required,min=1,dive,required"`
	Agg     yaml.MapSlice `yaml:"agg"`
	Merge   bool          `yaml:"merge"`
	AsIndex *bool         `yaml:"as_index"`
	Format  string        `yaml:"format" validate:"omitempty,oneof=jsonl json csv table"`
}

// LoadJob reads and validates a job file.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	job, err := ParseJob(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// ParseJob decodes and validates a job document.
func ParseJob(data []byte) (*Job, error) {
	var job Job
	if err := yaml.UnmarshalStrict(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Validate checks field constraints and option combinations.
func (j *Job) Validate() error {
	if err := validate.Struct(j); err != nil {
		return fmt.Errorf("job validation failed: %w", err)
	}
	if j.Merge && j.AsIndex != nil && !*j.AsIndex {
		return fmt.Errorf("job validation failed: as_index: false cannot be combined with merge")
	}
	return nil
}

// Spec decodes the agg section into an aggregation spec.
func (j *Job) Spec() (frame.AggSpec, error) {
	return groupagg.ParseSpecMapSlice(j.Agg)
}

// Options returns the renamer options selected by the job.
func (j *Job) Options() []groupagg.Option {
	if j.AsIndex == nil {
		return nil
	}
	return []groupagg.Option{groupagg.AsIndex(*j.AsIndex)}
}
