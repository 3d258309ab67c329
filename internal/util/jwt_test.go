package util

import (
	"net/http/httptest"
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "secret")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	userID, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	if userID != 42 {
		t.Errorf("Expected user ID 42, got %d", userID)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "secret")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("Expected error for wrong secret, got nil")
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc", ""},
		{"no token part", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := ExtractToken(req); got != tt.want {
				t.Errorf("ExtractToken = %q, expected %q", got, tt.want)
			}
		})
	}
}
