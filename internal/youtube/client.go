package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_models"
	"github.com/rs/zerolog"

	"github.com/snarg/ytgw/internal/metrics"
)

const defaultTimeout = 20 * time.Second

// defaultLanguages is the preference applied when a fetch names none.
var defaultLanguages = []string{"en"}

// transcriptAPI is the slice of the yt_transcript client the gateway uses,
// kept as an interface so tests can stand in for the real library.
type transcriptAPI interface {
	GetTranscripts(videoID string, languages []string, preserveFormatting bool) ([]yt_transcript_models.Transcript, error)
	ListTranscripts(videoID string) ([]yt_transcript_models.Transcript, error)
}

// Options configures a Client.
type Options struct {
	UserAgent string        // overrides the library's User-Agent when set
	Timeout   time.Duration // per upstream call
	Log       zerolog.Logger
}

// Client retrieves caption data through the yt_transcript library. The
// library owns the YouTube wire details (page retrieval, caption parsing,
// throttling); this type adds language selection, proxy routing, and error
// classification. Implements Provider.
type Client struct {
	userAgent string
	timeout   time.Duration
	newAPI    func(hc *http.Client) transcriptAPI
	log       zerolog.Logger
}

// NewClient creates a caption client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		newAPI: func(hc *http.Client) transcriptAPI {
			return yt_transcript.NewClient(yt_transcript.WithHttpClient(hc))
		},
		log: opts.Log,
	}
}

// FetchTranscript fetches the caption entries for the first language in the
// preference list that has a track.
func (c *Client) FetchTranscript(ctx context.Context, videoID string, opts FetchOptions) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	langs := opts.Languages
	if len(langs) == 0 {
		langs = defaultLanguages
	}

	hc, err := c.httpClient(opts.ProxyURL)
	if err != nil {
		return nil, err
	}

	transcripts, err := c.newAPI(hc).GetTranscripts(videoID, langs, false)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("fetch", "error").Inc()
		return nil, classify(videoID, err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("fetch", "ok").Inc()

	tr := pickTranscript(transcripts, langs)
	if tr == nil {
		return nil, newError(KindLanguageUnavailable, videoID,
			"No transcripts were found for any of the requested language codes (%s) for video %s",
			strings.Join(langs, ", "), videoID)
	}

	entries := make([]Entry, len(tr.Lines))
	for i, line := range tr.Lines {
		entries[i] = Entry{Text: line.Text, Start: line.Start, Duration: line.Duration}
	}
	c.log.Debug().
		Str("video_id", videoID).
		Str("language_code", tr.LanguageCode).
		Int("entries", len(entries)).
		Msg("transcript fetched")
	return entries, nil
}

// ListTranscripts returns the available caption tracks as language
// descriptors. The call always goes direct, never through a proxy.
func (c *Client) ListTranscripts(ctx context.Context, videoID string) ([]TranscriptInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hc, err := c.httpClient("")
	if err != nil {
		return nil, err
	}

	transcripts, err := c.newAPI(hc).ListTranscripts(videoID)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("list", "error").Inc()
		return nil, classify(videoID, err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("list", "ok").Inc()

	infos := make([]TranscriptInfo, len(transcripts))
	for i, tr := range transcripts {
		infos[i] = TranscriptInfo{
			Language:       tr.Language,
			LanguageCode:   tr.LanguageCode,
			IsGenerated:    tr.IsGenerated,
			IsTranslatable: tr.IsTranslatable,
		}
	}
	return infos, nil
}

// pickTranscript returns the first transcript whose language code matches
// the preference list, honoring preference order. Matching is exact: a
// request for "en" never picks up "en-US".
func pickTranscript(transcripts []yt_transcript_models.Transcript, langs []string) *yt_transcript_models.Transcript {
	for _, lang := range langs {
		for i := range transcripts {
			if transcripts[i].LanguageCode == lang {
				return &transcripts[i]
			}
		}
	}
	return nil
}

// httpClient builds the HTTP client handed to the library, adding a proxy
// transport when a proxy URL is supplied. The URL is forwarded as given,
// unvalidated.
func (c *Client) httpClient(proxyURL string) (*http.Client, error) {
	var transport http.RoundTripper = http.DefaultTransport
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		transport = &http.Transport{Proxy: http.ProxyURL(u)}
	}
	if c.userAgent != "" {
		transport = &agentTransport{next: transport, agent: c.userAgent}
	}
	return &http.Client{Timeout: c.timeout, Transport: transport}, nil
}

// agentTransport overrides the User-Agent on every outgoing request.
type agentTransport struct {
	next  http.RoundTripper
	agent string
}

func (t *agentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.next.RoundTrip(req)
}
