package client

import (
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"
)

// MaxBodySize bounds how much of a decoded response body is read.
var MaxBodySize int64 = 16 << 20

// ErrBodyTooLarge is returned when a body exceeds MaxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

// ReadBody reads the whole response body, undoing Content-Encoding. The
// caller still owns resp.Body.
func ReadBody(resp *http.Response) ([]byte, error) {
	reader, closeFn, err := decompress(resp)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	body, err := io.ReadAll(io.LimitReader(reader, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxBodySize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, MaxBodySize)
	}
	return body, nil
}

// ReadText reads the response body and converts it to UTF-8 according to the
// Content-Type charset, sniffing the markup when none is declared.
func ReadText(resp *http.Response) (string, error) {
	raw, err := ReadBody(resp)
	if err != nil {
		return "", err
	}
	r, err := charset.NewReader(strings.NewReader(string(raw)), resp.Header.Get("Content-Type"))
	if err != nil {
		// Unknown charset: keep the bytes as they are.
		return string(raw), nil
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode response text: %w", err)
	}
	return string(text), nil
}

func decompress(resp *http.Response) (io.Reader, func(), error) {
	noop := func() {}
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gz, func() { _ = gz.Close() }, nil
	case "br":
		return brotli.NewReader(resp.Body), noop, nil
	case "deflate":
		zr, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create deflate reader: %w", err)
		}
		return zr, func() { _ = zr.Close() }, nil
	default:
		return resp.Body, noop, nil
	}
}
