package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestIssuer(clock func() time.Time) *TokenIssuer {
	return NewTokenIssuer(TokenIssuerConfig{
		SigningSecret: []byte("test-signing-secret"),
		Issuer:        "association-api",
		Audience:      "association-admin",
		TokenTTL:      time.Hour,
		Clock:         clock,
	})
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(func() time.Time { return base })

	token, expiresIn, err := issuer.IssueToken("uzeuro")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expected 3600 second expiry, got %d", expiresIn)
	}

	subject, err := issuer.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if subject != "uzeuro" {
		t.Fatalf("expected subject uzeuro, got %q", subject)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(func() time.Time { return current })

	token, _, err := issuer.IssueToken("uzeuro")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	current = current.Add(2 * time.Hour)
	if _, err := issuer.ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	issuer := newTestIssuer(clock)
	other := NewTokenIssuer(TokenIssuerConfig{
		SigningSecret: []byte("another-secret"),
		Issuer:        "association-api",
		Audience:      "association-admin",
		Clock:         clock,
	})

	token, _, err := other.IssueToken("uzeuro")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := issuer.ValidateToken(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestIssueRequiresSecretAndSubject(t *testing.T) {
	bare := NewTokenIssuer(TokenIssuerConfig{})
	if _, _, err := bare.IssueToken("uzeuro"); !errors.Is(err, errMissingSigningSecret) {
		t.Fatalf("expected missing secret error, got %v", err)
	}

	issuer := newTestIssuer(nil)
	if _, _, err := issuer.IssueToken(""); !errors.Is(err, errMissingSubjectClaim) {
		t.Fatalf("expected missing subject error, got %v", err)
	}
}

func TestCredentialsMatch(t *testing.T) {
	creds := Credentials{Username: "uzeuro", Password: "eurouz"}

	testCases := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{name: "exact pair", username: "uzeuro", password: "eurouz", want: true},
		{name: "wrong password", username: "uzeuro", password: "wrong", want: false},
		{name: "wrong username", username: "admin", password: "eurouz", want: false},
		{name: "empty pair", username: "", password: "", want: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := creds.Match(testCase.username, testCase.password); got != testCase.want {
				t.Fatalf("expected %v, got %v", testCase.want, got)
			}
		})
	}
}
