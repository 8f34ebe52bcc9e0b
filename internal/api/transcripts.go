package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/snarg/ytgw/internal/metrics"
	"github.com/snarg/ytgw/internal/youtube"
)

// englishFallback is tried when the default fetch fails.
var englishFallback = []string{"en", "en-US", "en-GB"}

// bestAvailable narrows the last-resort pick from the listed tracks.
var bestAvailable = []string{"en", "en-US"}

type TranscriptsHandler struct {
	provider youtube.Provider
	log      zerolog.Logger
}

func NewTranscriptsHandler(provider youtube.Provider, log zerolog.Logger) *TranscriptsHandler {
	return &TranscriptsHandler{
		provider: provider,
		log:      log.With().Str("handler", "transcripts").Logger(),
	}
}

func (h *TranscriptsHandler) Routes(r chi.Router) {
	r.Get("/api/transcript/{videoID}", h.GetTranscript)
	r.Get("/api/transcript-{languageCode}/{videoID}", h.GetTranscriptInLanguage)
	r.Get("/api/transcript_languages/{videoID}", h.ListLanguages)
}

// TranscriptResponse is the envelope for a fetched transcript.
type TranscriptResponse struct {
	VideoID      string          `json:"video_id"`
	Language     string          `json:"language,omitempty"`
	Transcript   []youtube.Entry `json:"transcript"`
	FullText     string          `json:"full_text"`
	TotalEntries int             `json:"total_entries"`
	ProxyUsed    bool            `json:"proxy_used"`
}

// LanguagesResponse is the envelope for the language listing.
type LanguagesResponse struct {
	VideoID            string                   `json:"video_id"`
	AvailableLanguages []youtube.TranscriptInfo `json:"available_languages"`
	TotalLanguages     int                      `json:"total_languages"`
	ProxyUsed          bool                     `json:"proxy_used"`
}

// GetTranscript handles GET /api/transcript/{videoID}.
//
// Fallback chain, stopping at the first success: default language preference
// (through the proxy if one was given), then English variants, then the best
// English track among whatever the video actually has. The chain substitutes
// languages freely because the caller named none.
func (h *TranscriptsHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathVideoID(w, r)
	if !ok {
		return
	}
	proxy := r.URL.Query().Get("proxy")
	ctx := r.Context()

	entries, firstErr := h.provider.FetchTranscript(ctx, videoID, youtube.FetchOptions{ProxyURL: proxy})
	step := "default"
	if firstErr != nil {
		hlog.FromRequest(r).Warn().Err(firstErr).Str("video_id", videoID).Msg("default fetch failed, trying english variants")
		var err error
		entries, err = h.provider.FetchTranscript(ctx, videoID, youtube.FetchOptions{Languages: englishFallback})
		step = "english_variants"
		if err != nil {
			entries, err = h.fetchBestAvailable(ctx, videoID)
			step = "best_available"
			if err != nil {
				metrics.FallbackResolutionsTotal.WithLabelValues("exhausted").Inc()
				h.writeExhausted(w, firstErr)
				return
			}
		}
	}

	metrics.FallbackResolutionsTotal.WithLabelValues(step).Inc()
	WriteJSON(w, http.StatusOK, newTranscriptResponse(videoID, "", entries, proxy))
}

// fetchBestAvailable enumerates the video's tracks and fetches the best
// English match, if any.
func (h *TranscriptsHandler) fetchBestAvailable(ctx context.Context, videoID string) ([]youtube.Entry, error) {
	infos, err := h.provider.ListTranscripts(ctx, videoID)
	if err != nil {
		return nil, err
	}
	for _, lang := range bestAvailable {
		for _, info := range infos {
			if info.LanguageCode == lang {
				return h.provider.FetchTranscript(ctx, videoID, youtube.FetchOptions{Languages: []string{lang}})
			}
		}
	}
	return nil, fmt.Errorf("no english track among %d available transcripts", len(infos))
}

// writeExhausted maps the step-1 error to a response once every fallback has
// failed. Recognized not-found conditions stay 404; everything else is
// reported as suspected upstream blocking with remediation steps.
func (h *TranscriptsHandler) writeExhausted(w http.ResponseWriter, firstErr error) {
	switch youtube.KindOf(firstErr) {
	case youtube.KindNoTranscript, youtube.KindLanguageUnavailable:
		WriteErrorDetail(w, http.StatusNotFound, "not_found", "No transcripts found for this video")
	case youtube.KindVideoUnavailable:
		WriteErrorDetail(w, http.StatusNotFound, "not_found", "Video not found or unavailable")
	default:
		WriteErrorDetail(w, http.StatusServiceUnavailable, "upstream_blocked",
			fmt.Sprintf("YouTube is blocking requests. Try: 1) Different video ID, 2) Add ?proxy=YOUR_PROXY_URL, 3) Try again later. Original error: %s", firstErr))
	}
}

// GetTranscriptInLanguage handles GET /api/transcript-{languageCode}/{videoID}.
//
// Exactly one language is tried. A request that names a language must never
// be answered in a different one, so there is no substitution chain here;
// on failure the available codes are listed instead.
func (h *TranscriptsHandler) GetTranscriptInLanguage(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathVideoID(w, r)
	if !ok {
		return
	}
	lang := chi.URLParam(r, "languageCode")
	proxy := r.URL.Query().Get("proxy")
	ctx := r.Context()

	entries, err := h.provider.FetchTranscript(ctx, videoID, youtube.FetchOptions{
		Languages: []string{lang},
		ProxyURL:  proxy,
	})
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("video_id", videoID).Str("language_code", lang).Msg("language fetch failed")
		infos, listErr := h.provider.ListTranscripts(ctx, videoID)
		if listErr != nil {
			WriteErrorDetail(w, http.StatusNotFound, "not_found",
				fmt.Sprintf("No transcripts found for this video in language: %s", lang))
			return
		}
		codes := make([]string, len(infos))
		for i, info := range infos {
			codes[i] = info.LanguageCode
		}
		WriteErrorDetail(w, http.StatusNotFound, "language_not_found",
			fmt.Sprintf("No transcript found for language '%s'. Available languages: %s", lang, strings.Join(codes, ", ")))
		return
	}

	WriteJSON(w, http.StatusOK, newTranscriptResponse(videoID, lang, entries, proxy))
}

// ListLanguages handles GET /api/transcript_languages/{videoID}.
//
// The proxy query param only feeds proxy_used in the response; the
// enumeration call itself always goes direct (see DESIGN.md).
func (h *TranscriptsHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathVideoID(w, r)
	if !ok {
		return
	}
	proxy := r.URL.Query().Get("proxy")

	infos, err := h.provider.ListTranscripts(r.Context(), videoID)
	if err != nil {
		if youtube.KindOf(err) == youtube.KindVideoUnavailable {
			WriteErrorDetail(w, http.StatusNotFound, "not_found", "Video not found or unavailable")
			return
		}
		WriteErrorDetail(w, http.StatusInternalServerError, "internal_error",
			fmt.Sprintf("Error retrieving languages: %s", err))
		return
	}

	if infos == nil {
		infos = []youtube.TranscriptInfo{}
	}
	WriteJSON(w, http.StatusOK, LanguagesResponse{
		VideoID:            videoID,
		AvailableLanguages: infos,
		TotalLanguages:     len(infos),
		ProxyUsed:          proxy != "",
	})
}

// pathVideoID extracts and validates the videoID path param, writing a 400
// and returning false when it is empty. Nothing upstream is called for a
// request that fails here.
func pathVideoID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "videoID")
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	videoID := strings.TrimSpace(raw)
	if videoID == "" {
		WriteErrorDetail(w, http.StatusBadRequest, "bad_request", "Invalid YouTube video ID or URL")
		return "", false
	}
	return videoID, true
}

// newTranscriptResponse shapes entries into the response envelope. full_text
// is every entry's text in timeline order, space-joined and trimmed;
// total_entries always equals len(transcript).
func newTranscriptResponse(videoID, language string, entries []youtube.Entry, proxy string) TranscriptResponse {
	if entries == nil {
		entries = []youtube.Entry{}
	}
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	return TranscriptResponse{
		VideoID:      videoID,
		Language:     language,
		Transcript:   entries,
		FullText:     strings.TrimSpace(strings.Join(texts, " ")),
		TotalEntries: len(entries),
		ProxyUsed:    proxy != "",
	}
}
