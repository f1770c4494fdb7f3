package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorUnwrapsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("fetch schedule: %w", &StatusError{Provider: "nhl", StatusCode: 503, Path: "standings/now"})

	st, ok := AsStatusError(err)
	if !ok {
		t.Fatalf("expected status error")
	}
	if st.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", st.StatusCode)
	}
	if got := st.Error(); got != "nhl: unexpected status 503 for standings/now" {
		t.Fatalf("unexpected message %q", got)
	}
	if _, ok := AsStatusError(errors.New("plain")); ok {
		t.Fatalf("plain error should not unwrap")
	}
}
