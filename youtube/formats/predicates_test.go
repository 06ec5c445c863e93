package formats

import (
	"testing"

	"github.com/ytget/ytresolve/types"
)

func TestHasDirectURL(t *testing.T) {
	if !hasDirectURL(types.Format{URL: "http://x"}) {
		t.Fatal("expected true for non-empty URL")
	}
	if hasDirectURL(types.Format{URL: ""}) {
		t.Fatal("expected false for empty URL")
	}
	if hasDirectURL(types.Format{URL: " \t", SignatureCipher: "s=1&url=x"}) {
		t.Fatal("expected false for blank URL")
	}
}

func TestExtEquals(t *testing.T) {
	f := types.Format{MimeType: "video/mp4; codecs=\"avc1.64001F\""}
	if !extEquals(f, "mp4") {
		t.Fatal("mp4 should match")
	}
	if !extEquals(f, ".mp4") {
		t.Fatal(".mp4 should match")
	}
	if extEquals(f, "webm") {
		t.Fatal("webm should not match mp4")
	}
	if !extEquals(f, "") {
		t.Fatal("empty ext should match")
	}
}

func TestItagEquals(t *testing.T) {
	f := types.Format{Itag: 22}
	if !itagEquals(f, 22) {
		t.Fatal("22 should match")
	}
	if itagEquals(types.Format{}, 0) {
		t.Fatal("zero itag should never match")
	}
}

func TestWithinHeight(t *testing.T) {
	f := types.Format{Height: 720}
	if !withinHeight(f, 0, 0) {
		t.Fatal("no bounds should pass")
	}
	if !withinHeight(f, 480, 1080) {
		t.Fatal("720 should be within 480..1080")
	}
	if withinHeight(f, 1080, 0) {
		t.Fatal("720 should not be >=1080")
	}
	if withinHeight(f, 0, 360) {
		t.Fatal("720 should not be <=360")
	}
}

func TestBetter(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Format
	}{
		{"height", types.Format{Height: 1080, Bitrate: 1}, types.Format{Height: 720, Bitrate: 9}},
		{"bitrate", types.Format{Height: 720, Bitrate: 100}, types.Format{Height: 720, Bitrate: 1}},
		{"lower itag", types.Format{Height: 720, Itag: 22}, types.Format{Height: 720, Itag: 136}},
		{"url", types.Format{Itag: 18, URL: "a"}, types.Format{Itag: 18, URL: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !better(tt.a, tt.b) {
				t.Errorf("expected %+v to rank above %+v", tt.a, tt.b)
			}
			if better(tt.b, tt.a) {
				t.Errorf("expected %+v not to rank above %+v", tt.b, tt.a)
			}
		})
	}
	same := types.Format{Height: 720, URL: "x"}
	if better(same, same) {
		t.Error("a format must not rank above itself")
	}
}
