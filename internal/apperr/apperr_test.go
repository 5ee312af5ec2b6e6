package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := NotFound("wallet %d not found", 7)
	kind, ok := KindOf(err)
	if !ok || kind != KindNotFound {
		t.Fatalf("expected not-found kind, got %v %v", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatalf("plain errors must not carry a kind")
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	inner := Invalid("bad amount")
	wrapped := fmt.Errorf("transfer: %w", inner)
	if !IsKind(wrapped, KindInvalidInput) {
		t.Fatalf("expected kind to survive wrapping")
	}
	if IsKind(wrapped, KindConflict) {
		t.Fatalf("wrong kind matched")
	}
}

func TestUnavailableUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable(cause, "select user")
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
}
