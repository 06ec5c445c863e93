package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ytget/ytresolve"
	"github.com/ytget/ytresolve/errs"
	"github.com/ytget/ytresolve/internal/logger"
	"github.com/ytget/ytresolve/pkg/client"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitInvalidURL = 2
	exitScrape     = 3
	exitNoPlayable = 4
	exitTransport  = 5
)

// newResolver is replaced in tests to inject a transport.
var newResolver = ytresolve.New

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		flagFormat        string
		flagExt           string
		flagTimeout       time.Duration
		flagRetries       int
		flagUA            string
		flagProxy         string
		flagClientName    string
		flagClientVersion string
		flagLogLevel      string
		flagLogFormat     string
		flagVerbose       bool
	)

	fs := flag.NewFlagSet("ytresolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flagFormat, "format", "", "Format selector (e.g., 'itag=22', 'best', 'worst', 'height<=480')")
	fs.StringVar(&flagExt, "ext", "", "Desired extension (e.g., 'mp4', 'webm', 'm4a')")
	fs.DurationVar(&flagTimeout, "http-timeout", 30*time.Second, "HTTP timeout (e.g., 30s, 1m)")
	fs.IntVar(&flagRetries, "retries", 3, "HTTP attempts for transient errors")
	fs.StringVar(&flagUA, "ua", "", "Override User-Agent header of the page request")
	fs.StringVar(&flagProxy, "proxy", "", "Proxy URL (http/https/socks5)")
	fs.StringVar(&flagClientName, "client-name", "", "InnerTube client name (default ANDROID)")
	fs.StringVar(&flagClientVersion, "client-version", "", "InnerTube client version")
	fs.StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides "+logger.EnvLevel+")")
	fs.StringVar(&flagLogFormat, "log-format", "", "Log format: text, json, color (overrides "+logger.EnvFormat+")")
	fs.BoolVar(&flagVerbose, "v", false, "Verbose logging for all components")

	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: ytresolve [flags] <video_url>")
		_, _ = fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitFailure
	}

	if err := setupLogging(flagLogLevel, flagLogFormat, flagVerbose, stderr); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	r := newResolver().
		WithClientConfig(client.Config{Timeout: flagTimeout, Retries: flagRetries, UserAgent: flagUA, ProxyURL: flagProxy}).
		WithInnertubeClient(flagClientName, flagClientVersion)
	if flagFormat != "" || flagExt != "" {
		r = r.WithFormat(flagFormat, flagExt)
	}

	res, err := r.Resolve(context.Background(), strings.TrimSpace(fs.Arg(0)))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	if err := writeResult(stdout, res); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// setupLogging installs the global logger: environment first, flags on top.
func setupLogging(level, format string, verbose bool, stderr io.Writer) error {
	cfg := logger.EnvironmentConfig()
	if verbose {
		cfg.Level = "DEBUG"
		cfg.Components = logger.ParseComponents("all")
	}
	if level != "" {
		cfg.Level = level
	}
	if format != "" {
		cfg.Format = format
	}
	if err := cfg.ValidateConfig(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	lg, err := logger.CreateLoggerFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if o := strings.ToLower(strings.TrimSpace(cfg.Output)); o == "" || o == "stderr" {
		lg.SetOutput(stderr)
	}
	logger.SetGlobalLogger(lg)
	return nil
}

// writeResult prints res as one compact JSON line, keeping '&' in URLs literal.
func writeResult(w io.Writer, res *ytresolve.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		return exitInvalidURL
	case errors.Is(err, errs.ErrScrape):
		return exitScrape
	case errors.Is(err, errs.ErrNoPlayableFormat):
		return exitNoPlayable
	case errors.Is(err, errs.ErrTransport):
		return exitTransport
	}
	return exitFailure
}
