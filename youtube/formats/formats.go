package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ytget/ytresolve/errs"
	"github.com/ytget/ytresolve/internal/logger"
	"github.com/ytget/ytresolve/types"
	"github.com/ytget/ytresolve/youtube/innertube"
)

// Selector values understood by SelectFormat besides itag=N, height<=N and height>=N.
const (
	SelectorBest  = "best"
	SelectorWorst = "worst"
)

var errNilResponse = errors.New("formats: nil player response")

// intValue reads a JSON number that may also arrive as a decimal string.
func intValue(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	}
	return 0
}

// ParseFormats flattens formats and adaptiveFormats of the player response
// into a single list, in response order. Entries that are not objects are
// skipped; missing fields are left at their zero value.
func ParseFormats(data *innertube.PlayerResponse) ([]types.Format, error) {
	if data == nil {
		return nil, errNilResponse
	}
	all := make([]any, 0, len(data.StreamingData.Formats)+len(data.StreamingData.AdaptiveFormats))
	all = append(all, data.StreamingData.Formats...)
	all = append(all, data.StreamingData.AdaptiveFormats...)

	formats := make([]types.Format, 0, len(all))
	for _, formatData := range all {
		f, ok := formatData.(map[string]any)
		if !ok {
			continue
		}

		var size int64
		if v, ok := f["contentLength"].(string); ok {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				size = parsed
			}
		}

		mimeType, _ := f["mimeType"].(string)
		quality, _ := f["qualityLabel"].(string)
		if quality == "" {
			quality, _ = f["quality"].(string)
		}

		format := types.Format{
			Itag:     intValue(f["itag"]),
			Height:   intValue(f["height"]),
			Width:    intValue(f["width"]),
			MimeType: mimeType,
			Quality:  quality,
			Bitrate:  intValue(f["bitrate"]),
			Size:     size,
		}

		if urlVal, ok := f["url"].(string); ok {
			format.URL = urlVal
		}
		if sc, ok := f["signatureCipher"].(string); ok {
			format.SignatureCipher = sc
		} else if sc, ok := f["cipher"].(string); ok {
			format.SignatureCipher = sc
		}

		formats = append(formats, format)
	}
	return formats, nil
}

// SelectFormat picks one format that carries a direct URL.
//
// Supported selectors:
//   - "" or best: highest height (then bitrate)
//   - worst: lowest quality
//   - itag=NN: specific format by itag, best otherwise
//   - height<=NNN / height>=NNN: height bounds, then best
//
// ext restricts the container ("mp4", "webm", "m4a"). A filter that would
// leave nothing to choose from is ignored. When no format has a URL the
// error wraps errs.ErrNoPlayableFormat.
func SelectFormat(formats []types.Format, quality, ext string) (*types.Format, error) {
	log := logger.WithComponent(logger.ComponentFormat)

	filtered := make([]types.Format, 0, len(formats))
	for i := range formats {
		if hasDirectURL(formats[i]) {
			filtered = append(filtered, formats[i])
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("formats: %w", errs.ErrNoPlayableFormat)
	}
	log.Debug("usable formats", map[string]interface{}{
		"total":  len(formats),
		"usable": len(filtered),
	})

	filtered = keep(filtered, func(f types.Format) bool { return extEquals(f, ext) })

	q := strings.TrimSpace(strings.ToLower(quality))
	switch {
	case q == "" || q == SelectorBest || q == SelectorWorst:
	case strings.HasPrefix(q, "itag="):
		if it, err := strconv.Atoi(strings.TrimPrefix(q, "itag=")); err == nil {
			for i := range filtered {
				if itagEquals(filtered[i], it) {
					f := filtered[i]
					return &f, nil
				}
			}
		}
		log.Warn("requested itag not available, using best", map[string]interface{}{"selector": quality})
	case strings.HasPrefix(q, "height<="):
		if v, err := strconv.Atoi(strings.TrimPrefix(q, "height<=")); err == nil {
			filtered = keep(filtered, func(f types.Format) bool { return withinHeight(f, 0, v) })
		}
	case strings.HasPrefix(q, "height>="):
		if v, err := strconv.Atoi(strings.TrimPrefix(q, "height>=")); err == nil {
			filtered = keep(filtered, func(f types.Format) bool { return withinHeight(f, v, 0) })
		}
	default:
		log.Warn("unknown format selector, using best", map[string]interface{}{"selector": quality})
	}

	pick := filtered[0]
	for _, f := range filtered[1:] {
		if q == SelectorWorst {
			if better(pick, f) {
				pick = f
			}
		} else if better(f, pick) {
			pick = f
		}
	}
	log.Debug("format selected", map[string]interface{}{
		"itag":    pick.Itag,
		"height":  pick.Height,
		"bitrate": pick.Bitrate,
		"mime":    pick.MimeType,
	})
	return &pick, nil
}

// keep returns the formats matching pred, or all of them if none match.
func keep(formats []types.Format, pred func(types.Format) bool) []types.Format {
	out := make([]types.Format, 0, len(formats))
	for _, f := range formats {
		if pred(f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return formats
	}
	return out
}
