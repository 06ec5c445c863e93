package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/ytget/ytresolve/errs"
	"github.com/ytget/ytresolve/internal/logger"
	"github.com/ytget/ytresolve/pkg/client"
)

var playerURL = "https://www.youtube.com/youtubei/v1/player"

const (
	ytOrigin              = "https://www.youtube.com"
	headerContentTypeJSON = "application/json"
	androidOSVersion      = "11"
)

var apiKeyRe = regexp.MustCompile(`"INNERTUBE_API_KEY"\s*:\s*"([^"]+)"`)

// ClientContext identifies the InnerTube client the request claims to be.
type ClientContext struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSDKVersion int    `json:"androidSdkVersion,omitempty"`
}

// AndroidClient is the default identity. Player responses for it carry
// ready-to-use stream URLs.
var AndroidClient = ClientContext{
	ClientName:        "ANDROID",
	ClientVersion:     "20.10.38",
	AndroidSDKVersion: 30,
}

// clientCodeFromName returns X-YouTube-Client-Name numeric code for known clients
func clientCodeFromName(name string) string {
	switch strings.ToUpper(name) {
	case "WEB":
		return "1"
	case "MWEB":
		return "2"
	case "ANDROID":
		return "3"
	case "IOS":
		return "5"
	case "TVHTML5":
		return "7"
	case "WEB_EMBEDDED_PLAYER":
		return "56"
	case "WEB_CREATOR":
		return "62"
	case "WEB_REMIX":
		return "67"
	case "TVHTML5_SIMPLY":
		return "75"
	case "TVHTML5_SIMPLY_EMBEDDED_PLAYER":
		return "85"
	default:
		return ""
	}
}

// Client talks to the YouTube watch page and the InnerTube /player endpoint.
type Client struct {
	http    *client.Client
	context ClientContext
}

// New creates an InnerTube client using the ANDROID identity. A nil http
// client gets the package defaults.
func New(httpClient *client.Client) *Client {
	if httpClient == nil {
		httpClient = client.New()
	}
	return &Client{http: httpClient, context: AndroidClient}
}

// WithClient overrides the InnerTube client name and/or version. The Android
// SDK level is only sent for the ANDROID client.
func (c *Client) WithClient(name, version string) *Client {
	if name = strings.TrimSpace(name); name != "" {
		c.context.ClientName = name
	}
	if version = strings.TrimSpace(version); version != "" {
		c.context.ClientVersion = version
	}
	if strings.EqualFold(c.context.ClientName, AndroidClient.ClientName) {
		c.context.AndroidSDKVersion = AndroidClient.AndroidSDKVersion
	} else {
		c.context.AndroidSDKVersion = 0
	}
	return c
}

// Context returns the client identity sent with player requests.
func (c *Client) Context() ClientContext {
	return c.context
}

// PlayerResponse represents a response from the InnerTube /player endpoint.
type PlayerResponse struct {
	StreamingData struct {
		Formats         []any `json:"formats"`
		AdaptiveFormats []any `json:"adaptiveFormats"`
	} `json:"streamingData"`
	VideoDetails struct {
		Title *string `json:"title"`
	} `json:"videoDetails"`
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type playerRequest struct {
	Context struct {
		Client ClientContext `json:"client"`
	} `json:"context"`
	VideoID        string `json:"videoId"`
	ContentCheckOK bool   `json:"contentCheckOk"`
	RacyCheckOK    bool   `json:"racyCheckOk"`
}

// HarvestAPIKey downloads pageURL as-is and returns the INNERTUBE_API_KEY
// embedded in it. A page without the key yields an error wrapping errs.ErrScrape.
func (c *Client) HarvestAPIKey(ctx context.Context, pageURL string) (string, error) {
	log := logger.WithComponent(logger.ComponentInnerTube)

	header := http.Header{}
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	header.Set("Accept-Language", "en-US,en;q=0.5")
	header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := c.http.Get(ctx, pageURL, header)
	if err != nil {
		return "", fmt.Errorf("innertube: fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	page, err := client.ReadText(resp)
	if err != nil {
		return "", fmt.Errorf("innertube: read page: %w", &errs.TransportError{Op: http.MethodGet, Err: err})
	}
	log.Debug("watch page received", map[string]interface{}{
		"bytes":  len(page),
		"status": resp.StatusCode,
	})

	key := ExtractAPIKey(page)
	if key == "" {
		return "", fmt.Errorf("innertube: %w", errs.ErrScrape)
	}
	return key, nil
}

// ExtractAPIKey returns the INNERTUBE_API_KEY value found in page markup, or
// "" if none. The JSON-style marker is tried first, then any ytcfg.set(...)
// configuration scripts.
func ExtractAPIKey(page string) string {
	if m := apiKeyRe.FindStringSubmatch(page); len(m) == 2 && strings.TrimSpace(m[1]) != "" {
		return m[1]
	}
	key := apiKeyFromYtcfg(page)
	if key != "" {
		logger.WithComponent(logger.ComponentInnerTube).Debug("api key found via ytcfg evaluation")
	}
	return key
}

// GetPlayerResponse fetches video metadata for videoID from the /player
// endpoint, authorised by apiKey.
func (c *Client) GetPlayerResponse(ctx context.Context, videoID, apiKey string) (*PlayerResponse, error) {
	log := logger.WithComponent(logger.ComponentInnerTube)

	var body playerRequest
	body.Context.Client = c.context
	body.VideoID = videoID
	body.ContentCheckOK = true
	body.RacyCheckOK = true

	requestBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := playerURL + "?key=" + url.QueryEscape(apiKey)
	ua := c.userAgent()
	resp, err := c.http.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", headerContentTypeJSON)
		req.Header.Set("User-Agent", ua)
		req.Header.Set("Accept", "*/*")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept-Encoding", "gzip, deflate, br")
		req.Header.Set("Origin", ytOrigin)
		if code := clientCodeFromName(c.context.ClientName); code != "" {
			req.Header.Set("X-YouTube-Client-Name", code)
		}
		req.Header.Set("X-YouTube-Client-Version", c.context.ClientVersion)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("innertube: player request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := client.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("innertube: read player response: %w", &errs.TransportError{Op: http.MethodPost, Err: err})
	}

	var playerResponse PlayerResponse
	if err := json.Unmarshal(data, &playerResponse); err != nil {
		return nil, fmt.Errorf("innertube: failed to parse player response: %w", err)
	}

	log.Debug("player response received", map[string]interface{}{
		"video_id":         videoID,
		"status":           playerResponse.PlayabilityStatus.Status,
		"formats":          len(playerResponse.StreamingData.Formats),
		"adaptive_formats": len(playerResponse.StreamingData.AdaptiveFormats),
	})
	return &playerResponse, nil
}

// userAgent mirrors the official app for the ANDROID identity and falls back
// to the HTTP client's browser agent otherwise.
func (c *Client) userAgent() string {
	if strings.EqualFold(c.context.ClientName, AndroidClient.ClientName) {
		return "com.google.android.youtube/" + c.context.ClientVersion + " (Linux; U; Android " + androidOSVersion + ") gzip"
	}
	return c.http.UserAgent
}
