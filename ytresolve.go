package ytresolve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ytget/ytresolve/errs"
	"github.com/ytget/ytresolve/internal/logger"
	"github.com/ytget/ytresolve/pkg/client"
	"github.com/ytget/ytresolve/types"
	"github.com/ytget/ytresolve/youtube/formats"
	"github.com/ytget/ytresolve/youtube/innertube"
	"github.com/ytget/ytresolve/youtube/videoid"
)

// Result is the outcome of a resolution.
type Result = types.Result

// Options contains configuration for resolutions.
//
// Use chainable setters on Resolver to populate these options.
type Options struct {
	FormatSelector  string
	DesiredExt      string
	HTTPClient      *http.Client
	ClientConfig    client.Config
	ITClientName    string
	ITClientVersion string
}

// Resolver turns video page URLs into a title and a direct media URL.
// A Resolver keeps no state between calls.
type Resolver struct {
	options Options
}

// New creates a new Resolver with default options.
func New() *Resolver {
	return &Resolver{}
}

// WithFormat sets a format selector and optional desired extension.
// Examples: "itag=22", "best", "height<=480". Extension is case-insensitive.
func (r *Resolver) WithFormat(quality, ext string) *Resolver {
	r.options.FormatSelector = quality
	r.options.DesiredExt = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	return r
}

// WithHTTPClient sets a custom HTTP client to be used for all network calls.
func (r *Resolver) WithHTTPClient(hc *http.Client) *Resolver {
	r.options.HTTPClient = hc
	return r
}

// WithClientConfig sets timeout, retries, user agent and proxy of the HTTP
// client built for each resolution.
func (r *Resolver) WithClientConfig(cfg client.Config) *Resolver {
	r.options.ClientConfig = cfg
	return r
}

// WithInnertubeClient sets the Innertube client name and version to use.
// Empty values keep the ANDROID defaults.
func (r *Resolver) WithInnertubeClient(name, version string) *Resolver {
	r.options.ITClientName = strings.TrimSpace(name)
	r.options.ITClientVersion = strings.TrimSpace(version)
	return r
}

// ExtractVideoID returns the 11-character video identifier in rawURL.
func ExtractVideoID(rawURL string) (string, error) {
	return videoid.Extract(rawURL)
}

// Resolve extracts the video ID from rawURL, harvests an API key from the
// page at rawURL and asks the player endpoint for the best direct stream.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*Result, error) {
	log := logger.WithComponent(logger.ComponentApp)
	runID := uuid.NewString()
	rawURL = strings.TrimSpace(rawURL)

	videoID, err := videoid.Extract(rawURL)
	if err != nil {
		logger.WithComponent(logger.ComponentVideoID).Debug("video id extraction failed", map[string]interface{}{"run_id": runID, "error": err.Error()})
		return nil, fmt.Errorf("extract video id: %w", err)
	}
	logger.WithComponent(logger.ComponentVideoID).Debug("video id extracted", map[string]interface{}{"run_id": runID, "video_id": videoID})
	log.Info("resolving video", map[string]interface{}{"run_id": runID, "video_id": videoID})
	if err := checkPageURL(rawURL); err != nil {
		return nil, err
	}

	it := r.innertubeClient(r.httpClient())
	apiKey, err := it.HarvestAPIKey(ctx, rawURL)
	if err != nil {
		log.Warn("api key harvest failed", map[string]interface{}{"run_id": runID, "error": err.Error()})
		return nil, err
	}
	log.Debug("api key harvested", map[string]interface{}{"run_id": runID})

	res, err := r.resolveWithKey(ctx, it, videoID, apiKey)
	if err != nil {
		log.Warn("resolution failed", map[string]interface{}{"run_id": runID, "error": err.Error()})
		return nil, err
	}
	log.Info("video resolved", map[string]interface{}{"run_id": runID, "video_id": videoID})
	return res, nil
}

// checkPageURL rejects inputs that carry an ID but cannot be fetched as a page.
func checkPageURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
	}
	if s := strings.ToLower(u.Scheme); (s != "http" && s != "https") || u.Host == "" {
		return fmt.Errorf("%w: page url must be absolute http(s): %q", errs.ErrInvalidInput, rawURL)
	}
	return nil
}

// HarvestAPIKey fetches pageURL and returns the INNERTUBE_API_KEY embedded in it.
func (r *Resolver) HarvestAPIKey(ctx context.Context, pageURL string) (string, error) {
	return r.innertubeClient(r.httpClient()).HarvestAPIKey(ctx, strings.TrimSpace(pageURL))
}

// ResolveWithKey queries the player endpoint for videoID using apiKey and
// returns the title and the URL of the best format that has one.
func (r *Resolver) ResolveWithKey(ctx context.Context, videoID, apiKey string) (*Result, error) {
	return r.resolveWithKey(ctx, r.innertubeClient(r.httpClient()), videoID, apiKey)
}

func (r *Resolver) resolveWithKey(ctx context.Context, it *innertube.Client, videoID, apiKey string) (*Result, error) {
	if !videoid.Valid(videoID) {
		return nil, fmt.Errorf("%w: malformed video id %q", errs.ErrInvalidInput, videoID)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: empty api key", errs.ErrScrape)
	}

	playerResponse, err := it.GetPlayerResponse(ctx, videoID, apiKey)
	if err != nil {
		return nil, fmt.Errorf("get player response: %w", err)
	}

	available, err := formats.ParseFormats(playerResponse)
	if err != nil {
		return nil, fmt.Errorf("parse formats: %w", err)
	}
	selected, err := formats.SelectFormat(available, r.options.FormatSelector, r.options.DesiredExt)
	if err != nil {
		if perr := playabilityError(playerResponse.PlayabilityStatus.Status, playerResponse.PlayabilityStatus.Reason); perr != nil && errors.Is(err, errs.ErrNoPlayableFormat) {
			return nil, fmt.Errorf("%w (%s): %w", perr, playerResponse.PlayabilityStatus.Status, err)
		}
		return nil, err
	}

	res := &Result{URL: selected.URL}
	if t := playerResponse.VideoDetails.Title; t != nil {
		title := *t
		res.Title = &title
	}
	return res, nil
}

// playabilityError maps a non-OK playability status to a sentinel error.
func playabilityError(status, reason string) error {
	s := strings.ToUpper(strings.TrimSpace(status))
	reason = strings.ToLower(reason)
	switch s {
	case "", "OK":
		return nil
	case "ERROR":
		if strings.Contains(reason, "geograph") || strings.Contains(reason, "available in your country") {
			return errs.ErrGeoBlocked
		}
		if strings.Contains(reason, "rate limit") || strings.Contains(reason, "quota") {
			return errs.ErrRateLimited
		}
		return errs.ErrVideoUnavailable
	case "LOGIN_REQUIRED":
		if strings.Contains(reason, "private") {
			return errs.ErrPrivate
		}
		return errs.ErrAgeRestricted
	case "AGE_CHECK_REQUIRED", "AGE_VERIFICATION_REQUIRED":
		return errs.ErrAgeRestricted
	case "UNPLAYABLE":
		if strings.Contains(reason, "private") {
			return errs.ErrPrivate
		}
		return errs.ErrVideoUnavailable
	}
	return errs.ErrVideoUnavailable
}

// httpClient builds the client for one resolution, so cookies picked up from
// the page never outlive it.
func (r *Resolver) httpClient() *client.Client {
	cfg := r.options.ClientConfig
	if r.options.HTTPClient == nil {
		return client.NewWith(cfg)
	}
	c := client.Wrap(r.options.HTTPClient, cfg.Retries)
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	return c
}

func (r *Resolver) innertubeClient(hc *client.Client) *innertube.Client {
	return innertube.New(hc).WithClient(r.options.ITClientName, r.options.ITClientVersion)
}
