package domain

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user@example.com", "user@example.com"},
		{"  User@Example.COM  ", "user@example.com"},
		{"\tUSER@EXAMPLE.COM\n", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEmail_Idempotent(t *testing.T) {
	once := NormalizeEmail("  User@Example.COM  ")
	twice := NormalizeEmail(once)
	if once != twice {
		t.Fatalf("normalization not idempotent: %q != %q", once, twice)
	}
}

func TestPrincipalOf_ImageNormalization(t *testing.T) {
	withImage := PrincipalOf(&User{ID: "u1", Image: "https://cdn/avatar.png"})
	if withImage.Image == nil || *withImage.Image != "https://cdn/avatar.png" {
		t.Fatalf("expected image to carry over, got %v", withImage.Image)
	}

	withoutImage := PrincipalOf(&User{ID: "u2"})
	if withoutImage.Image != nil {
		t.Fatalf("absent image must normalize to nil, got %q", *withoutImage.Image)
	}
}
