// Package videoid derives canonical YouTube video identifiers from URLs.
package videoid

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ytget/ytresolve/errs"
)

// Length is the length of every YouTube video identifier.
const Length = 11

var (
	validRe    = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	fallbackRe = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)
)

var shortLinkHosts = map[string]bool{
	"youtu.be":     true,
	"www.youtu.be": true,
}

const watchPath = "/watch"

// Valid reports whether id is a syntactically valid video identifier.
func Valid(id string) bool {
	return validRe.MatchString(id)
}

// Extract returns the video identifier contained in rawURL.
//
// Rules are tried in order and the first one that applies decides:
//   - short links (youtu.be): the path without leading slashes;
//   - the /watch path: the "v" query parameter, which must be present;
//   - anything else: the first 11-character token after "v=" or "/".
//
// The result always satisfies Valid; otherwise an error wrapping
// errs.ErrInvalidInput is returned.
func Extract(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err == nil {
		if shortLinkHosts[strings.ToLower(u.Hostname())] {
			return checked(strings.TrimLeft(u.Path, "/"), rawURL)
		}
		if u.Path == watchPath {
			v, ok := u.Query()["v"]
			if !ok || len(v) == 0 {
				return "", fmt.Errorf("%w: missing v parameter in %q", errs.ErrInvalidInput, rawURL)
			}
			return checked(v[0], rawURL)
		}
	}

	m := fallbackRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidInput, rawURL)
	}
	return m[1], nil
}

func checked(id, rawURL string) (string, error) {
	if !Valid(id) {
		return "", fmt.Errorf("%w: malformed video id %q in %q", errs.ErrInvalidInput, id, rawURL)
	}
	return id, nil
}
