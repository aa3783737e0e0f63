package config

import (
	"errors"
	"fmt"
	"time"
)

// Default values applied by the loader and the run command flags.
const (
	DefaultRepository   = "."
	DefaultSince        = "1 day ago"
	DefaultMinThreshold = 25
	DefaultAnalyzerCmd  = "ai-attribution-analyzer"
	DefaultArtifactPath = "ai-attribution-results.json"
)

// Threshold bounds in percent.
const (
	minThresholdPercent = 0
	maxThresholdPercent = 100
)

// Sentinel errors for configuration validation.
var (
	ErrThresholdOutOfRange = errors.New("minimum threshold must be between 0 and 100")
	ErrEmptySince          = errors.New("since must be non-empty")
	ErrEmptyRepository     = errors.New("repository must be non-empty")
	ErrEmptyAnalyzerCmd    = errors.New("analyzer command must be non-empty")
	ErrInvalidTimeout      = errors.New("invalid analyzer timeout")
)

// RunConfig is the immutable input to a single run.
// Field tags use mapstructure for viper unmarshalling.
type RunConfig struct {
	Repository       string         `mapstructure:"repository"`
	Since            string         `mapstructure:"since"`
	ShowDetails      bool           `mapstructure:"show_details"`
	MinimumThreshold int            `mapstructure:"minimum_threshold"`
	Analyzer         AnalyzerConfig `mapstructure:"analyzer"`
	Output           OutputConfig   `mapstructure:"output"`
}

// AnalyzerConfig holds settings for the external analyzer invocation.
type AnalyzerConfig struct {
	Command string `mapstructure:"command"`
	Timeout string `mapstructure:"timeout"`
}

// OutputConfig holds artifact export settings.
type OutputConfig struct {
	ArtifactPath string `mapstructure:"artifact_path"`
}

// Validate checks parameter bounds. Repository accessibility is checked
// separately by the pipeline, which needs git access for it.
func (c *RunConfig) Validate() error {
	if c.MinimumThreshold < minThresholdPercent || c.MinimumThreshold > maxThresholdPercent {
		return fmt.Errorf("%w: got %d", ErrThresholdOutOfRange, c.MinimumThreshold)
	}

	if c.Since == "" {
		return ErrEmptySince
	}

	if c.Repository == "" {
		return ErrEmptyRepository
	}

	if c.Analyzer.Command == "" {
		return ErrEmptyAnalyzerCmd
	}

	_, err := c.AnalyzerTimeout()
	if err != nil {
		return err
	}

	return nil
}

// AnalyzerTimeout parses the analyzer timeout setting.
// An empty or "0" value means no timeout.
func (c *RunConfig) AnalyzerTimeout() (time.Duration, error) {
	if c.Analyzer.Timeout == "" || c.Analyzer.Timeout == "0" {
		return 0, nil
	}

	timeout, err := time.ParseDuration(c.Analyzer.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Analyzer.Timeout)
	}

	if timeout < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Analyzer.Timeout)
	}

	return timeout, nil
}
