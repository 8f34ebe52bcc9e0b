package youtube

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			"structured_kind",
			&Error{Kind: KindBlocked, Msg: "captcha required"},
			KindBlocked,
		},
		{
			"structured_kind_wrapped",
			fmt.Errorf("fetch failed: %w", &Error{Kind: KindVideoUnavailable, Msg: "gone"}),
			KindVideoUnavailable,
		},
		{
			"opaque_no_transcripts_message",
			errors.New("upstream: No transcripts were found for any of the requested language codes"),
			KindNoTranscript,
		},
		{
			"opaque_video_unavailable_message",
			errors.New("upstream: Video unavailable"),
			KindVideoUnavailable,
		},
		{
			"opaque_anything_else",
			errors.New("connection reset by peer"),
			KindUpstream,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("classified_errors_pass_through", func(t *testing.T) {
		orig := newError(KindBlocked, "abc", "captcha required")
		if got := classify("abc", orig); got != error(orig) {
			t.Errorf("classify rewrapped an already classified error: %v", got)
		}
	})

	tests := []struct {
		name string
		msg  string
		want Kind
	}{
		{"language_codes", "No transcripts were found for any of the requested language codes: [fr de]", KindLanguageUnavailable},
		{"no_transcript", "no transcript found for video abc", KindNoTranscript},
		{"unavailable", "Video unavailable", KindVideoUnavailable},
		{"captcha", "request blocked: captcha required", KindBlocked},
		{"throttled", "YouTube responded with too many requests", KindBlocked},
		{"opaque", "EOF", KindUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("abc", errors.New(tt.msg))
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("classify returned unclassified error: %v", err)
			}
			if e.Kind != tt.want {
				t.Errorf("kind = %v, want %v", e.Kind, tt.want)
			}
			if e.VideoID != "abc" {
				t.Errorf("VideoID = %q, want %q", e.VideoID, "abc")
			}
		})
	}
}

func TestErrorMessagesCarryClassifiableText(t *testing.T) {
	// Consumers that only see the message text must still be able to
	// classify these two conditions.
	noTranscript := newError(KindNoTranscript, "abc", "No transcripts were found for video %s", "abc")
	if KindOf(errors.New(noTranscript.Error())) != KindNoTranscript {
		t.Errorf("no-transcript message %q is not classifiable by text", noTranscript)
	}

	unavailable := newError(KindVideoUnavailable, "abc", "Video unavailable: %s is private, deleted, or does not exist", "abc")
	if KindOf(errors.New(unavailable.Error())) != KindVideoUnavailable {
		t.Errorf("unavailable message %q is not classifiable by text", unavailable)
	}
}
