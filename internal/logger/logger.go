package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level is a logging severity, ordered from TRACE to ERROR.
type Level int

const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
)

var zerologLevels = map[Level]zerolog.Level{
	TRACE: zerolog.TraceLevel,
	DEBUG: zerolog.DebugLevel,
	INFO:  zerolog.InfoLevel,
	WARN:  zerolog.WarnLevel,
	ERROR: zerolog.ErrorLevel,
}

// String returns the upper-case level name.
func (l Level) String() string {
	if zl, ok := zerologLevels[l]; ok {
		return strings.ToUpper(zl.String())
	}
	return "UNKNOWN"
}

// Component names the part of the resolver a message comes from.
type Component string

const (
	ComponentApp       Component = "app"
	ComponentVideoID   Component = "videoid"
	ComponentInnerTube Component = "innertube"
	ComponentClient    Component = "client"
	ComponentFormat    Component = "format"
)

// AllComponents lists every component known to the resolver.
var AllComponents = []Component{
	ComponentApp,
	ComponentVideoID,
	ComponentInnerTube,
	ComponentClient,
	ComponentFormat,
}

// Format selects how records are rendered.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatColor
)

// callerSkip is the number of frames between zerolog and the caller of a
// ComponentLogger method.
const callerSkip = 3

// Config describes a Logger. Components not present in the map are disabled.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer
	Components map[Component]bool
	ShowCaller bool
	Timestamp  bool
}

// DefaultConfig returns default logger configuration. Output goes to stderr
// because stdout carries the resolution result.
func DefaultConfig() *Config {
	return &Config{
		Level:  INFO,
		Format: FormatText,
		Output: os.Stderr,
		Components: map[Component]bool{
			ComponentApp:       true,
			ComponentVideoID:   false,
			ComponentInnerTube: false,
			ComponentClient:    false,
			ComponentFormat:    false,
		},
		ShowCaller: false,
		Timestamp:  false,
	}
}

// Logger provides structured logging on top of zerolog with per-component filtering.
type Logger struct {
	config *Config
	zl     zerolog.Logger
	mu     sync.RWMutex
}

// New creates a new logger instance
func New(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Components == nil {
		config.Components = make(map[Component]bool)
	}
	l := &Logger{config: config}
	l.rebuild()
	return l
}

// rebuild recreates the zerolog backend from the current config. Callers hold mu.
func (l *Logger) rebuild() {
	out := l.config.Output
	if out == nil {
		out = os.Stderr
	}
	out = zerolog.SyncWriter(out)

	var w io.Writer = out
	switch l.config.Format {
	case FormatText, FormatColor:
		cw := zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    l.config.Format == FormatText,
			TimeFormat: time.DateTime,
		}
		if !l.config.Timestamp {
			cw.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		w = cw
	}

	zl := zerolog.New(w).Level(zerologLevels[l.config.Level])
	if l.config.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	l.zl = zl
}

// WithComponent returns a logger tagging every record with component.
func (l *Logger) WithComponent(component Component) *ComponentLogger {
	return &ComponentLogger{logger: l, component: component}
}

// update applies fn to the config under the write lock and rebuilds the backend.
func (l *Logger) update(fn func(c *Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.config)
	l.rebuild()
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level Level) {
	l.update(func(c *Config) { c.Level = level })
}

// SetFormat switches between text, JSON and colored output.
func (l *Logger) SetFormat(format Format) {
	l.update(func(c *Config) { c.Format = format })
}

// SetOutput redirects records to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.update(func(c *Config) { c.Output = w })
}

// EnableComponent turns on records from component.
func (l *Logger) EnableComponent(component Component) {
	l.update(func(c *Config) { c.Components[component] = true })
}

// DisableComponent turns off records from component.
func (l *Logger) DisableComponent(component Component) {
	l.update(func(c *Config) { c.Components[component] = false })
}

func (l *Logger) log(level Level, component Component, message string, fields map[string]interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if level < l.config.Level {
		return
	}
	if !l.config.Components[component] {
		return
	}

	e := l.zl.WithLevel(zerologLevels[level])
	if e == nil {
		return
	}
	e = e.Str("component", string(component))
	if l.config.ShowCaller {
		e = e.Caller(callerSkip)
	}
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Msg(message)
}

// ComponentLogger provides component-specific logging
type ComponentLogger struct {
	logger    *Logger
	component Component
}

// Trace, Debug, Info, Warn and Error emit message with optional fields.
// Only the first fields map is used.
func (cl *ComponentLogger) Trace(message string, fields ...map[string]interface{}) {
	cl.emit(TRACE, message, fields)
}

func (cl *ComponentLogger) Debug(message string, fields ...map[string]interface{}) {
	cl.emit(DEBUG, message, fields)
}

func (cl *ComponentLogger) Info(message string, fields ...map[string]interface{}) {
	cl.emit(INFO, message, fields)
}

func (cl *ComponentLogger) Warn(message string, fields ...map[string]interface{}) {
	cl.emit(WARN, message, fields)
}

func (cl *ComponentLogger) Error(message string, fields ...map[string]interface{}) {
	cl.emit(ERROR, message, fields)
}

func (cl *ComponentLogger) emit(level Level, message string, fields []map[string]interface{}) {
	var f map[string]interface{}
	if len(fields) > 0 {
		f = fields[0]
	}
	cl.logger.log(level, cl.component, message, f)
}

var (
	globalMu     sync.RWMutex
	globalLogger = New(DefaultConfig())
)

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// WithComponent returns a component logger from global logger
func WithComponent(component Component) *ComponentLogger {
	return GetGlobalLogger().WithComponent(component)
}
