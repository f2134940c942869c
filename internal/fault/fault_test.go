package fault

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		BadRequest:         http.StatusBadRequest,
		NotFound:           http.StatusNotFound,
		ServiceUnavailable: http.StatusServiceUnavailable,
		RateLimited:        http.StatusTooManyRequests,
		Internal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := kind.Status(); got != want {
			t.Fatalf("%s -> %d, want %d", kind, got, want)
		}
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != Internal {
		t.Fatalf("got %v", got)
	}
	if got := KindOf(New(NotFound, "missing")); got != NotFound {
		t.Fatalf("got %v", got)
	}
	wrapped := fmt.Errorf("outer: %w", New(RateLimited, "slow down"))
	if got := KindOf(wrapped); got != RateLimited {
		t.Fatalf("got %v", got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Internal, cause, "while exploding")
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable")
	}
	if DetailOf(err) != "while exploding" {
		t.Fatalf("detail = %q", DetailOf(err))
	}
}
