package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Environment variables read by EnvironmentConfig.
const (
	EnvLevel      = "YTRESOLVE_LOG_LEVEL"
	EnvFormat     = "YTRESOLVE_LOG_FORMAT"
	EnvOutput     = "YTRESOLVE_LOG_OUTPUT"
	EnvCaller     = "YTRESOLVE_LOG_CALLER"
	EnvTimestamp  = "YTRESOLVE_LOG_TIMESTAMP"
	EnvComponents = "YTRESOLVE_LOG_COMPONENTS"
)

// LogConfig is the textual logging configuration assembled from environment
// variables and command-line flags.
type LogConfig struct {
	Level      string
	Format     string
	Output     string
	Components map[string]bool
	ShowCaller bool
	Timestamp  bool
}

// DefaultLogConfig returns default logging configuration
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "INFO",
		Format: "text",
		Output: "stderr",
		Components: map[string]bool{
			string(ComponentApp):       true,
			string(ComponentVideoID):   false,
			string(ComponentInnerTube): false,
			string(ComponentClient):    false,
			string(ComponentFormat):    false,
		},
	}
}

// EnvironmentConfig loads configuration from environment variables on top of defaults.
func EnvironmentConfig() *LogConfig {
	return environmentConfig(os.Getenv)
}

func environmentConfig(getenv func(string) string) *LogConfig {
	config := DefaultLogConfig()

	if level := getenv(EnvLevel); level != "" {
		config.Level = level
	}
	if format := getenv(EnvFormat); format != "" {
		config.Format = format
	}
	if output := getenv(EnvOutput); output != "" {
		config.Output = output
	}
	if caller := getenv(EnvCaller); caller != "" {
		config.ShowCaller = caller == "true" || caller == "1"
	}
	if timestamp := getenv(EnvTimestamp); timestamp != "" {
		config.Timestamp = timestamp == "true" || timestamp == "1"
	}

	if components := getenv(EnvComponents); components != "" {
		config.Components = ParseComponents(components)
	}

	return config
}

// ParseComponents turns a comma-separated list into an enable map. The value
// "all" enables every known component.
func ParseComponents(list string) map[string]bool {
	out := make(map[string]bool)
	for _, comp := range strings.Split(list, ",") {
		comp = strings.ToLower(strings.TrimSpace(comp))
		if comp == "" {
			continue
		}
		if comp == "all" {
			for _, c := range AllComponents {
				out[string(c)] = true
			}
			continue
		}
		out[comp] = true
	}
	return out
}

// ToLoggerConfig converts LogConfig to logger.Config
func (c *LogConfig) ToLoggerConfig() (*Config, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}

	format, err := parseFormat(c.Format)
	if err != nil {
		return nil, fmt.Errorf("parse format: %w", err)
	}

	output, err := parseOutput(c.Output)
	if err != nil {
		return nil, fmt.Errorf("parse output: %w", err)
	}

	components := make(map[Component]bool)
	for name, enabled := range c.Components {
		components[Component(name)] = enabled
	}

	return &Config{
		Level:      level,
		Format:     format,
		Output:     output,
		Components: components,
		ShowCaller: c.ShowCaller,
		Timestamp:  c.Timestamp,
	}, nil
}

// ValidateConfig validates the configuration
func (c *LogConfig) ValidateConfig() error {
	if _, err := parseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid level: %w", err)
	}
	if _, err := parseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if _, err := parseOutput(c.Output); err != nil {
		return fmt.Errorf("invalid output: %w", err)
	}
	return nil
}

// CreateLoggerFromConfig creates a logger from LogConfig
func CreateLoggerFromConfig(config *LogConfig) (*Logger, error) {
	loggerConfig, err := config.ToLoggerConfig()
	if err != nil {
		return nil, fmt.Errorf("convert config: %w", err)
	}
	return New(loggerConfig), nil
}

func parseLevel(levelStr string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown level: %s", levelStr)
	}
}

func parseFormat(formatStr string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(formatStr)) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "color", "colored":
		return FormatColor, nil
	default:
		return FormatText, fmt.Errorf("unknown format: %s", formatStr)
	}
}

// stdout is deliberately not accepted: it carries the result JSON.
func parseOutput(outputStr string) (io.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(outputStr)) {
	case "stderr", "":
		return os.Stderr, nil
	case "null", "none":
		return io.Discard, nil
	default:
		return nil, fmt.Errorf("unknown output: %s", outputStr)
	}
}
