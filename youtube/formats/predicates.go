// Package formats turns InnerTube streaming data into a list of formats and
// picks the one to hand out.
package formats

import (
	"strings"

	"github.com/ytget/ytresolve/internal/mimeext"
	"github.com/ytget/ytresolve/types"
)

// hasDirectURL returns true when the format already contains a resolvable URL.
// Formats that only carry a signatureCipher are not usable.
func hasDirectURL(format types.Format) bool {
	return strings.TrimSpace(format.URL) != ""
}

// extEquals checks that the format would be saved with desiredExt ("mp4",
// ".webm", "m4a"). An empty desiredExt matches everything.
func extEquals(format types.Format, desiredExt string) bool {
	return mimeext.Matches(format.MimeType, desiredExt)
}

// itagEquals checks that format's itag matches the specified itag value.
// Returns false if itag is 0 or negative.
func itagEquals(format types.Format, itag int) bool {
	return itag > 0 && format.Itag == itag
}

// withinHeight checks whether the format's height is within [minHeight, maxHeight].
// A bound of 0 is ignored.
func withinHeight(format types.Format, minHeight int, maxHeight int) bool {
	if minHeight > 0 && format.Height < minHeight {
		return false
	}
	if maxHeight > 0 && format.Height > maxHeight {
		return false
	}
	return true
}

// better reports whether candidate ranks above current: greater height, then
// greater bitrate, then lower itag, then the lexicographically smaller URL.
// The order is total, so the winner does not depend on input order.
func better(candidate types.Format, current types.Format) bool {
	if candidate.Height != current.Height {
		return candidate.Height > current.Height
	}
	if candidate.Bitrate != current.Bitrate {
		return candidate.Bitrate > current.Bitrate
	}
	if candidate.Itag != current.Itag {
		return candidate.Itag < current.Itag
	}
	return candidate.URL < current.URL
}
