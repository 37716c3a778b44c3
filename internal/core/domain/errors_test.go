package domain

import (
	"errors"
	"testing"
)

func TestE_KindMatchingAndMessage(t *testing.T) {
	err := E(ErrForbidden, "admin privileges required")

	if !errors.Is(err, ErrForbidden) {
		t.Fatal("errors.Is must match the wrapped kind")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("must not match a different kind")
	}
	if err.Error() != "admin privileges required" {
		t.Fatalf("Error() must render only the message, got %q", err.Error())
	}
}
