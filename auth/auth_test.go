// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

func TestBearer(t *testing.T) {
	h := make(http.Header)
	if err := Bearer("secret-token").Apply(h); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got, want := h.Get("Authorization"), "Bearer secret-token"; got != want {
		t.Errorf("Authorization = %q, want %q", got, want)
	}

	if err := Bearer("").Apply(make(http.Header)); err == nil {
		t.Error("Apply() expected error for empty token")
	}
}

func TestAPIKey(t *testing.T) {
	h := make(http.Header)
	if err := APIKey("k123", "").Apply(h); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := h.Get(DefaultAPIKeyHeader); got != "k123" {
		t.Errorf("%s = %q, want %q", DefaultAPIKeyHeader, got, "k123")
	}

	h = make(http.Header)
	if err := APIKey("k123", "X-Custom-Key").Apply(h); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := h.Get("X-Custom-Key"); got != "k123" {
		t.Errorf("X-Custom-Key = %q, want %q", got, "k123")
	}
}

func TestVerifyNotificationToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set(NotificationTokenHeader, "tok-1")

	if !VerifyNotificationToken(req, "tok-1") {
		t.Error("VerifyNotificationToken() = false for matching token")
	}
	if VerifyNotificationToken(req, "tok-2") {
		t.Error("VerifyNotificationToken() = true for mismatched token")
	}
	if !VerifyNotificationToken(req, "") {
		t.Error("VerifyNotificationToken() = false with no expected token")
	}
}

func signTestToken(t *testing.T, secret string, expiry time.Time) string {
	t.Helper()

	token, err := jwt.NewBuilder().
		IssuedAt(time.Now()).
		Expiration(expiry).
		Claim("taskId", "task-1").
		Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), []byte(secret)))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	return string(signed)
}

func TestNotificationVerifier(t *testing.T) {
	verifier := NewNotificationVerifier("shared-secret")

	signed := signTestToken(t, "shared-secret", time.Now().Add(time.Minute))
	if _, err := verifier.Verify(signed); err != nil {
		t.Errorf("Verify() error = %v", err)
	}

	wrongKey := signTestToken(t, "other-secret", time.Now().Add(time.Minute))
	if _, err := verifier.Verify(wrongKey); err == nil {
		t.Error("Verify() expected error for wrong signing key")
	}

	expired := signTestToken(t, "shared-secret", time.Now().Add(-time.Hour))
	if _, err := verifier.Verify(expired); err == nil {
		t.Error("Verify() expected error for expired token")
	}
}

func TestNotificationVerifierRequest(t *testing.T) {
	verifier := NewNotificationVerifier("shared-secret")

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "shared-secret", time.Now().Add(time.Minute)))
	if _, err := verifier.VerifyRequest(req); err != nil {
		t.Errorf("VerifyRequest() error = %v", err)
	}

	bare := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	if _, err := verifier.VerifyRequest(bare); err == nil {
		t.Error("VerifyRequest() expected error for missing header")
	}
}
