package api

import "net/http"

// Root serves a static index describing the API surface.
func Root(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": serviceName,
		"endpoints": map[string]string{
			"get_transcript":           "/api/transcript/{video_id}",
			"get_transcript_with_lang": "/api/transcript-{language_code}/{video_id}",
			"get_available_languages":  "/api/transcript_languages/{video_id}",
		},
		"examples": map[string]string{
			"basic_transcript":    "/api/transcript/dQw4w9WgXcQ",
			"spanish_transcript":  "/api/transcript-es/dQw4w9WgXcQ",
			"english_transcript":  "/api/transcript-en/dQw4w9WgXcQ",
			"available_languages": "/api/transcript_languages/dQw4w9WgXcQ",
		},
	})
}
