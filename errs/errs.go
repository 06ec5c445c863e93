package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates that no video identifier could be derived from the input URL.
	ErrInvalidInput = errors.New("invalid youtube url")
	// ErrScrape indicates that the watch page did not contain the InnerTube API key marker.
	ErrScrape = errors.New("unable to extract api key")
	// ErrTransport indicates a network, timeout or HTTP status failure.
	ErrTransport = errors.New("transport failure")
	// ErrNoPlayableFormat indicates that no format in the player response carries a direct URL.
	ErrNoPlayableFormat = errors.New("no downloadable formats found")

	// ErrVideoUnavailable indicates that the requested video cannot be accessed.
	ErrVideoUnavailable = errors.New("video unavailable")
	// ErrPrivate indicates that the video is private.
	ErrPrivate = errors.New("video is private")
	// ErrAgeRestricted indicates that the video has an age restriction.
	ErrAgeRestricted = errors.New("age restricted")
	// ErrGeoBlocked indicates the video is not available in the current region.
	ErrGeoBlocked = errors.New("geo blocked")
	// ErrRateLimited indicates throttling or rate limiting by the remote service.
	ErrRateLimited = errors.New("rate limited")
)

// TransportError describes a failed HTTP exchange. It matches ErrTransport
// with errors.Is and unwraps to the underlying cause.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := e.Op
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
