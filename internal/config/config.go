// Package config provides configuration loading with layered overrides.
// Load order: defaults -> YAML/JSON file -> environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	configloader "github.com/GabrielNunesIT/go-libs/config-loader"
)

// Malformed line policies.
const (
	PolicyAbort = "abort"
	PolicySkip  = "skip"
)

// Stdout emitter formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatW3C  = "w3c"
)

// Config is the root configuration structure for the parser.
type Config struct {
	LogLevel string         `koanf:"loglevel" yaml:"log_level" json:"log_level"`
	Parser   ParserConfig   `koanf:"parser"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Emitters EmitterConfig  `koanf:"emitters"`
}

// ParserConfig controls the parsing engine.
type ParserConfig struct {
	// BatchSize is the number of records returned per call in bounded mode.
	BatchSize int `koanf:"batchsize" yaml:"batch_size" json:"batch_size"`

	// FullBufferThresholdMB is the file size below which the whole file is read in one call.
	FullBufferThresholdMB int `koanf:"fullbufferthresholdmb" yaml:"full_buffer_threshold_mb" json:"full_buffer_threshold_mb"`

	// Strict reports data lines that precede any #Fields: directive as malformed.
	Strict bool `koanf:"strict"`

	// OnMalformed is "abort" or "skip".
	OnMalformed string `koanf:"onmalformed" yaml:"on_malformed" json:"on_malformed"`

	// Location is the time zone of the date/time columns (IIS writes UTC).
	Location string `koanf:"location"`

	// MaxLineSize bounds a single line in bytes.
	MaxLineSize int `koanf:"maxlinesize" yaml:"max_line_size" json:"max_line_size"`
}

// PipelineConfig controls the pipeline behavior.
type PipelineConfig struct {
	ShutdownTimeout time.Duration `koanf:"shutdowntimeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// EmitterConfig holds configuration for all emitters.
type EmitterConfig struct {
	Stdout StdoutEmitterConfig `koanf:"stdout"`
	File   FileEmitterConfig   `koanf:"file"`
}

// StdoutEmitterConfig configures the stdout emitter.
type StdoutEmitterConfig struct {
	Enabled bool   `koanf:"enabled"`
	Format  string `koanf:"format"` // "json", "text" or "w3c"
}

// FileEmitterConfig configures the file emitter.
type FileEmitterConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"`
	MaxSizeMB  int    `koanf:"maxsizemb" yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `koanf:"maxbackups" yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `koanf:"maxagedays" yaml:"max_age_days" json:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// Parser defaults.
const (
	DefaultBatchSize             = 1_000_000
	DefaultFullBufferThresholdMB = 50
	DefaultMaxLineSize           = 1024 * 1024
)

// defaults returns the default configuration values.
func defaults() Config {
	return Config{
		LogLevel: "info",
		Parser:   DefaultParserConfig(),
		Pipeline: PipelineConfig{
			ShutdownTimeout: 30 * time.Second,
		},
		Emitters: EmitterConfig{
			Stdout: StdoutEmitterConfig{
				Enabled: true,
				Format:  FormatJSON,
			},
			File: FileEmitterConfig{
				Enabled:    false,
				MaxSizeMB:  100,
				MaxBackups: 3,
				MaxAgeDays: 7,
				Compress:   true,
			},
		},
	}
}

// DefaultParserConfig returns the parser settings used when nothing is configured.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		BatchSize:             DefaultBatchSize,
		FullBufferThresholdMB: DefaultFullBufferThresholdMB,
		Strict:                false,
		OnMalformed:           PolicyAbort,
		Location:              "UTC",
		MaxLineSize:           DefaultMaxLineSize,
	}
}

// ThresholdBytes returns the full-buffer threshold in bytes.
func (c ParserConfig) ThresholdBytes() int64 {
	return int64(c.FullBufferThresholdMB) * 1024 * 1024
}

// TimeLocation resolves Location, defaulting to UTC when empty.
func (c ParserConfig) TimeLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Location)
}

// Validate checks the parser settings.
func (c ParserConfig) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("parser batch size must be positive, got %d", c.BatchSize)
	}
	if c.FullBufferThresholdMB < 0 {
		return fmt.Errorf("parser full buffer threshold must not be negative, got %d", c.FullBufferThresholdMB)
	}
	if c.MaxLineSize <= 0 {
		return fmt.Errorf("parser max line size must be positive, got %d", c.MaxLineSize)
	}
	switch c.OnMalformed {
	case PolicyAbort, PolicySkip:
	default:
		return fmt.Errorf("unknown malformed line policy %q (want %s or %s)", c.OnMalformed, PolicyAbort, PolicySkip)
	}
	if _, err := c.TimeLocation(); err != nil {
		return fmt.Errorf("invalid parser location %q: %w", c.Location, err)
	}
	return nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Parser.Validate(); err != nil {
		return err
	}
	switch c.Emitters.Stdout.Format {
	case FormatJSON, FormatText, FormatW3C:
	default:
		return fmt.Errorf("unknown stdout format %q", c.Emitters.Stdout.Format)
	}
	if c.Emitters.File.Enabled && c.Emitters.File.Path == "" {
		return fmt.Errorf("file emitter enabled without a path")
	}
	return nil
}

// Load reads configuration from all sources with proper override order.
// Order: defaults -> config file -> environment variables.
func Load(configPath string) (*Config, error) {
	opts := []configloader.Option[Config]{
		configloader.WithDefaults[Config](defaults()),
	}

	// Add file source if path provided or if default config exists
	if configPath != "" {
		opts = append(opts, configloader.WithFile[Config](configPath))
	} else {
		for _, path := range []string{"./iislog.yaml", "/etc/iislog/config.yaml"} {
			if _, err := os.Stat(path); err == nil {
				opts = append(opts, configloader.WithFile[Config](path))
				break
			}
		}
	}

	opts = append(opts, configloader.WithEnv[Config]("IISLOG_"))

	loader := configloader.NewConfigLoader[Config](opts...)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
