// Package mimeext maps stream MIME types to container extensions.
package mimeext

import (
	"strings"
)

const (
	// DefaultExt is the extension used when MIME is unknown or empty.
	DefaultExt = "mp4"

	// ExtM4A is the extension of MP4 audio-only streams.
	ExtM4A = "m4a"
	// ExtWebM is the extension of WebM streams.
	ExtWebM = "webm"
	// Ext3GP is the extension of legacy 3GPP streams.
	Ext3GP = "3gp"

	MimeVideoMP4  = "video/mp4"
	MimeAudioMP4  = "audio/mp4"
	MimeVideoWebM = "video/webm"
	MimeAudioWebM = "audio/webm"
	MimeVideo3GPP = "video/3gpp"
)

// ExtFromMime returns the extension (without dot) for a stream MIME type such
// as `video/mp4; codecs="avc1.42001E"`. Unknown types fall back to their
// subtype, empty ones to mp4.
func ExtFromMime(mime string) string {
	base := baseType(mime)
	if base == "" {
		return DefaultExt
	}
	switch base {
	case MimeVideoMP4:
		return DefaultExt
	case MimeAudioMP4:
		return ExtM4A
	case MimeVideoWebM, MimeAudioWebM:
		return ExtWebM
	case MimeVideo3GPP:
		return Ext3GP
	}
	if _, sub, ok := strings.Cut(base, "/"); ok && sub != "" {
		return sub
	}
	return DefaultExt
}

// Normalize lowercases ext and strips a leading dot.
func Normalize(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

// Matches reports whether a stream of the given MIME type would be saved
// with extension ext. An empty ext matches everything.
func Matches(mime, ext string) bool {
	want := Normalize(ext)
	if want == "" {
		return true
	}
	return ExtFromMime(mime) == want
}

func baseType(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return mime
}
