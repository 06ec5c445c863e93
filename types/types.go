package types

// Format describes one candidate stream from the player response.
type Format struct {
	Itag            int
	URL             string
	Height          int
	Width           int
	Quality         string
	MimeType        string
	Bitrate         int
	Size            int64
	SignatureCipher string
}

// Result is the outcome of a resolution: an optional title and a direct media URL.
type Result struct {
	Title *string `json:"title"`
	URL   string  `json:"url"`
}
