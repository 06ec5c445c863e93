package mimeext

import "testing"

func TestExtFromMime(t *testing.T) {
	cases := map[string]string{
		"video/mp4":                          "mp4",
		"audio/mp4":                          "m4a",
		"video/webm":                         "webm",
		"audio/webm; codecs=\"opus\"":        "webm",
		"video/3gpp; codecs=\"mp4v.20.3\"":   "3gp",
		"VIDEO/MP4":                          "mp4",
		"video/unknown":                      "unknown",
		"":                                   "mp4",
		"garbage":                            "mp4",
		"video/mp4; codecs=\"avc1.42001E\"": "mp4",
	}
	for in, want := range cases {
		if got := ExtFromMime(in); got != want {
			t.Fatalf("%q -> %q (want %q)", in, got, want)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		mime string
		ext  string
		want bool
	}{
		{"video/mp4; codecs=\"avc1.64001F\"", "mp4", true},
		{"video/mp4", ".MP4", true},
		{"video/mp4", "webm", false},
		{"audio/mp4", "m4a", true},
		{"audio/mp4", "mp4", false},
		{"video/webm", "", true},
		{"", "mp4", true},
	}
	for _, tt := range tests {
		if got := Matches(tt.mime, tt.ext); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.mime, tt.ext, got, tt.want)
		}
	}
}
