package youtube

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a caption retrieval failure.
type Kind int

const (
	KindUpstream            Kind = iota // unclassified upstream failure
	KindNoTranscript                    // the video has no caption tracks
	KindVideoUnavailable                // private, deleted, or nonexistent video
	KindLanguageUnavailable             // tracks exist, none in the requested languages
	KindBlocked                         // YouTube is captcha-gating this IP
)

// Error is a classified caption retrieval failure.
type Error struct {
	Kind    Kind
	VideoID string
	Msg     string
}

func (e *Error) Error() string { return e.Msg }

func newError(kind Kind, videoID, format string, args ...any) *Error {
	return &Error{Kind: kind, VideoID: videoID, Msg: fmt.Sprintf(format, args...)}
}

// classify wraps an error coming back from the transcript library,
// attaching the video ID and a kind derived from the message text. The
// library reports failures as plain strings, so this boundary is the one
// place text matching decides a kind. Errors that are already classified
// pass through untouched.
func classify(videoID string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	kind := KindUpstream
	switch {
	case strings.Contains(lower, "requested language codes"):
		kind = KindLanguageUnavailable
	case strings.Contains(lower, "no transcript"):
		kind = KindNoTranscript
	case strings.Contains(lower, "video unavailable"), strings.Contains(lower, "video is unavailable"):
		kind = KindVideoUnavailable
	case strings.Contains(lower, "captcha"), strings.Contains(lower, "too many requests"):
		kind = KindBlocked
	}
	return &Error{Kind: kind, VideoID: videoID, Msg: msg}
}

// KindOf returns the error's kind. Errors that did not originate in this
// package get classified by message text, which is all an opaque upstream
// failure carries.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "No transcripts were found"):
		return KindNoTranscript
	case strings.Contains(msg, "Video unavailable"):
		return KindVideoUnavailable
	default:
		return KindUpstream
	}
}
