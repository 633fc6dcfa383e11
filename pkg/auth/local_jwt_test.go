package auth

import (
	"testing"
	"time"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer token", "Bearer abc123", "abc123", false},
		{"lowercase bearer", "bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"missing scheme", "abc123", "", true},
		{"wrong scheme", "Basic abc123", "", true},
		{"empty token", "Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	jwtAuth, err := NewLocalJWTAuth("test-secret", 0)
	if err != nil {
		t.Fatalf("NewLocalJWTAuth: %v", err)
	}

	access, err := jwtAuth.GenerateAccessToken("user-1", "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	user, err := jwtAuth.VerifyAccessToken(access)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if user.ID != "user-1" || user.Role != "user" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestVerifyAccessTokenRejectsWrongSecret(t *testing.T) {
	signer, _ := NewLocalJWTAuth("secret-a", 0)
	verifier, _ := NewLocalJWTAuth("secret-b", 0)

	access, err := signer.GenerateAccessToken("user-1", "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := verifier.VerifyAccessToken(access); err == nil {
		t.Error("expected verification to fail with mismatched secret")
	}
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	jwtAuth, _ := NewLocalJWTAuth("test-secret", time.Nanosecond)

	access, err := jwtAuth.GenerateAccessToken("user-1", "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := jwtAuth.VerifyAccessToken(access); err == nil {
		t.Error("expected verification to fail for expired token")
	}
}

func TestNewLocalJWTAuthRequiresSecret(t *testing.T) {
	if _, err := NewLocalJWTAuth("", 0); err == nil {
		t.Error("expected error for empty secret")
	}
}
