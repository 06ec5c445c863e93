package logger

import (
	"io"
	"os"
	"testing"
)

func TestEnvironmentConfig(t *testing.T) {
	env := map[string]string{
		EnvLevel:      "debug",
		EnvFormat:     "json",
		EnvOutput:     "null",
		EnvCaller:     "1",
		EnvTimestamp:  "true",
		EnvComponents: "innertube, format",
	}
	config := environmentConfig(func(k string) string { return env[k] })

	if config.Level != "debug" {
		t.Errorf("Expected level debug, got %s", config.Level)
	}
	if config.Format != "json" {
		t.Errorf("Expected format json, got %s", config.Format)
	}
	if !config.ShowCaller || !config.Timestamp {
		t.Error("Expected caller and timestamp enabled")
	}
	if !config.Components["innertube"] || !config.Components["format"] {
		t.Errorf("Expected innertube and format enabled, got %v", config.Components)
	}
	if config.Components["app"] {
		t.Error("Explicit component list should replace defaults")
	}

	lc, err := config.ToLoggerConfig()
	if err != nil {
		t.Fatalf("ToLoggerConfig: %v", err)
	}
	if lc.Level != DEBUG {
		t.Errorf("Expected DEBUG, got %v", lc.Level)
	}
	if lc.Format != FormatJSON {
		t.Errorf("Expected FormatJSON, got %v", lc.Format)
	}
	if lc.Output != io.Discard {
		t.Error("Expected io.Discard output for null")
	}
}

func TestEnvironmentConfigDefaults(t *testing.T) {
	config := environmentConfig(func(string) string { return "" })
	lc, err := config.ToLoggerConfig()
	if err != nil {
		t.Fatalf("ToLoggerConfig: %v", err)
	}
	if lc.Output != os.Stderr {
		t.Error("Default output should be stderr")
	}
	if !lc.Components[ComponentApp] {
		t.Error("App component should be enabled by default")
	}
}

func TestParseComponentsAll(t *testing.T) {
	got := ParseComponents("all")
	for _, c := range AllComponents {
		if !got[string(c)] {
			t.Errorf("Expected %s enabled", c)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LogConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*LogConfig) {}},
		{name: "bad level", mutate: func(c *LogConfig) { c.Level = "loud" }, wantErr: true},
		{name: "bad format", mutate: func(c *LogConfig) { c.Format = "xml" }, wantErr: true},
		{name: "stdout rejected", mutate: func(c *LogConfig) { c.Output = "stdout" }, wantErr: true},
		{name: "warning alias", mutate: func(c *LogConfig) { c.Level = "warning" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultLogConfig()
			tt.mutate(c)
			err := c.ValidateConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
