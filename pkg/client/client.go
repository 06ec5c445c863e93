package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/net/publicsuffix"

	"github.com/ytget/ytresolve/errs"
	"github.com/ytget/ytresolve/internal/logger"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3

	userAgentValue = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 3 * time.Second
	maxElapsed     = 30 * time.Second
)

// defaultTransport is a tuned HTTP transport reused across clients.
var defaultTransport = &http.Transport{
	Proxy:                 http.ProxyFromEnvironment,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 10 * time.Second,
	ForceAttemptHTTP2:     true,
	// Bodies are decoded by ReadBody, which also understands brotli.
	DisableCompression: true,
	ReadBufferSize:     16 * 1024,
	WriteBufferSize:    16 * 1024,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
}

// Config holds optional client parameters. Zero values use defaults.
type Config struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
	ProxyURL  string
}

// Client wraps http.Client with retry/backoff and default headers.
type Client struct {
	HTTPClient *http.Client
	// Retries is the total number of attempts per request.
	Retries   int
	UserAgent string
}

// New creates a new Client with a tuned Transport, default timeout, and retries.
func New() *Client {
	return NewWith(Config{})
}

// NewWith creates a new client with provided config. Zero values use defaults.
// The client gets its own cookie jar so cookies set by the watch page reach the
// player request of the same run.
func NewWith(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = userAgentValue
	}

	tr := defaultTransport.Clone()
	if cfg.ProxyURL != "" {
		if proxyFunc, err := proxyFromURLString(cfg.ProxyURL); err == nil {
			tr.Proxy = proxyFunc
		}
	}

	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	return &Client{
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: tr,
			Jar:       jar,
		},
		Retries:   retries,
		UserAgent: ua,
	}
}

// Wrap adapts an existing http.Client. Zero retries use the default.
func Wrap(httpClient *http.Client, retries int) *Client {
	c := New()
	if httpClient != nil {
		c.HTTPClient = httpClient
	}
	if retries > 0 {
		c.Retries = retries
	}
	return c
}

// RequestFunc builds a fresh request for each attempt.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// statusError marks a non-2xx response inside the retry loop.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d", e.code)
}

// Do executes the request built by build with exponential backoff. Network
// failures, 429 and 5xx responses are retried; any other non-2xx status is
// returned immediately. Failures are reported as *errs.TransportError.
func (c *Client) Do(ctx context.Context, build RequestFunc) (*http.Response, error) {
	log := logger.WithComponent(logger.ComponentClient)

	var (
		method  string
		target  string
		attempt int
	)
	operation := func() (*http.Response, error) {
		attempt++
		req, err := build(ctx)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		method, target = req.Method, redactURL(req.URL)
		if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
			return nil, backoff.Permanent(fmt.Errorf("unsupported url scheme %q", req.URL.Scheme))
		}
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", c.userAgent())
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			log.Debug("request failed", map[string]interface{}{
				"method":  method,
				"url":     target,
				"attempt": attempt,
				"error":   err.Error(),
			})
			return nil, err
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		_ = resp.Body.Close()

		serr := &statusError{code: resp.StatusCode}
		if isRetryableStatus(resp.StatusCode) {
			log.Debug("retryable status", map[string]interface{}{
				"method":  method,
				"url":     target,
				"attempt": attempt,
				"status":  resp.StatusCode,
			})
			return nil, serr
		}
		return nil, backoff.Permanent(serr)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialBackoff
	bo.MaxInterval = maxBackoff

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.retries())),
		backoff.WithMaxElapsedTime(maxElapsed),
	)
	if err != nil {
		te := &errs.TransportError{Op: method, URL: target}
		var serr *statusError
		if errors.As(err, &serr) {
			te.StatusCode = serr.code
		} else {
			te.Err = err
		}
		if te.Op == "" {
			te.Op = "request"
		}
		return nil, te
	}
	return resp, nil
}

// Get performs a GET request with the retry policy of Do. Extra headers are
// applied on top of the default User-Agent.
func (c *Client) Get(ctx context.Context, rawURL string, header http.Header) (*http.Response, error) {
	return c.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range header {
			req.Header[k] = append([]string(nil), v...)
		}
		return req, nil
	})
}

func (c *Client) retries() int {
	if c.Retries < 1 {
		return 1
	}
	return c.Retries
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return userAgentValue
	}
	return c.UserAgent
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// redactURL drops the query string so API keys do not end up in errors or logs.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	clean.RawQuery = ""
	clean.Fragment = ""
	clean.User = nil
	return clean.String()
}

// proxyFromURLString parses a proxy URL and returns a Proxy function.
func proxyFromURLString(raw string) (func(*http.Request) (*url.URL, error), error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return http.ProxyURL(u), nil
}
