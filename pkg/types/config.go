package types

import "strings"

// Config holds the settings the shelf CLI reads from config.yaml, the
// environment, and flags.
type Config struct {
	SeedFile   string `json:"seed_file" yaml:"seed_file" mapstructure:"seed_file"`
	LateDays   int    `json:"late_days" yaml:"late_days" mapstructure:"late_days"`
	LogLevel   string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	ExportPath string `json:"export_path" yaml:"export_path" mapstructure:"export_path"`
}

// Defaults.
const (
	DefaultLateDays = 14
	DefaultLogLevel = "warn"
)

// Recognized log levels.
var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		LateDays: DefaultLateDays,
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.LateDays < 0 {
		return ErrLateDaysNegative
	}
	if c.LogLevel != "" && !knownLogLevels[strings.ToLower(c.LogLevel)] {
		return ErrLogLevelUnknown
	}
	return nil
}
