package youtube

import "context"

// Provider is the interface for caption retrieval backends.
type Provider interface {
	// FetchTranscript returns the caption entries for a video, in timeline
	// order. An empty language preference means the default ("en").
	FetchTranscript(ctx context.Context, videoID string, opts FetchOptions) ([]Entry, error)

	// ListTranscripts returns every language the video has caption tracks
	// for, in the order YouTube reports them.
	ListTranscripts(ctx context.Context, videoID string) ([]TranscriptInfo, error)
}

// FetchOptions narrows a transcript fetch.
type FetchOptions struct {
	// Languages is an ordered preference list of language codes. The first
	// code with a matching track wins. Empty means the default preference.
	Languages []string

	// ProxyURL, when set, routes the upstream calls through an HTTP(S) proxy.
	ProxyURL string
}

// Entry is one caption line with its position on the video timeline.
type Entry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// TranscriptInfo describes one available caption track.
type TranscriptInfo struct {
	Language       string `json:"language"`
	LanguageCode   string `json:"language_code"`
	IsGenerated    bool   `json:"is_generated"`
	IsTranslatable bool   `json:"is_translatable"`
}
