package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Output = &buf
	config.Level = INFO

	logger := New(config)
	compLogger := logger.WithComponent(ComponentApp)

	compLogger.Debug("This should not appear")
	compLogger.Info("This should appear")
	compLogger.Warn("This should appear")
	compLogger.Error("This should appear")

	output := buf.String()
	if strings.Contains(output, "This should not appear") {
		t.Error("DEBUG message should be filtered out")
	}
	if strings.Count(output, "This should appear") != 3 {
		t.Errorf("INFO/WARN/ERROR messages should appear, got %q", output)
	}
}

func TestLogger_Components(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Output = &buf
	config.Components[ComponentInnerTube] = false

	logger := New(config)
	appLogger := logger.WithComponent(ComponentApp)
	itLogger := logger.WithComponent(ComponentInnerTube)

	appLogger.Info("App message")
	itLogger.Info("InnerTube message")

	output := buf.String()
	if !strings.Contains(output, "App message") {
		t.Error("App message should appear")
	}
	if strings.Contains(output, "InnerTube message") {
		t.Error("InnerTube message should be filtered out")
	}

	logger.EnableComponent(ComponentInnerTube)
	itLogger.Info("InnerTube enabled")
	if !strings.Contains(buf.String(), "InnerTube enabled") {
		t.Error("InnerTube message should appear after EnableComponent")
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Output = &buf
	config.Format = FormatJSON

	logger := New(config)
	logger.WithComponent(ComponentApp).Info("Test message", map[string]interface{}{
		"key": "value",
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("JSON output should be valid: %v (%q)", err, buf.String())
	}
	if entry["level"] != "info" {
		t.Errorf("Expected level info, got %v", entry["level"])
	}
	if entry["component"] != "app" {
		t.Errorf("Expected component app, got %v", entry["component"])
	}
	if entry["message"] != "Test message" {
		t.Errorf("Expected message, got %v", entry["message"])
	}
	if entry["key"] != "value" {
		t.Errorf("Expected field key=value, got %v", entry["key"])
	}
}

func TestLogger_TextFields(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Output = &buf

	logger := New(config)
	logger.WithComponent(ComponentApp).Info("Test message", map[string]interface{}{
		"url":   "https://example.com",
		"count": 42,
	})

	output := buf.String()
	if !strings.Contains(output, "url=https://example.com") {
		t.Errorf("Fields should be included in output, got %q", output)
	}
	if !strings.Contains(output, "count=42") {
		t.Errorf("Fields should be included in output, got %q", output)
	}
	if strings.Contains(output, "\033[") {
		t.Error("Text format should not contain color codes")
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Output = &buf
	config.Format = FormatJSON
	config.ShowCaller = true

	logger := New(config)
	logger.WithComponent(ComponentApp).Info("Test message")

	if !strings.Contains(buf.String(), `"caller":`) {
		t.Errorf("Caller information should be included in output, got %q", buf.String())
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Output = &buf

	logger := New(config)
	compLogger := logger.WithComponent(ComponentApp)

	compLogger.Debug("hidden")
	logger.SetLevel(DEBUG)
	compLogger.Debug("visible")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("DEBUG message before SetLevel should be filtered out")
	}
	if !strings.Contains(output, "visible") {
		t.Error("DEBUG message after SetLevel should appear")
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Output = &buf

	prev := GetGlobalLogger()
	SetGlobalLogger(New(config))
	defer SetGlobalLogger(prev)

	WithComponent(ComponentApp).Info("Global logger test")

	if !strings.Contains(buf.String(), "Global logger test") {
		t.Error("Global logger should work")
	}
}

func TestLogger_Concurrency(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Output = &buf

	logger := New(config)
	compLogger := logger.WithComponent(ComponentApp)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			compLogger.Info("Concurrent message", map[string]interface{}{
				"goroutine": i,
			})
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Errorf("Expected 10 log lines, got %d", len(lines))
	}
}

func TestLogger_LevelNames(t *testing.T) {
	expected := map[Level]string{
		TRACE: "TRACE",
		DEBUG: "DEBUG",
		INFO:  "INFO",
		WARN:  "WARN",
		ERROR: "ERROR",
	}

	for level, expectedName := range expected {
		if level.String() != expectedName {
			t.Errorf("Level %d should have name %s, got %s", level, expectedName, level.String())
		}
	}
}
