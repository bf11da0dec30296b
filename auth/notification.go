// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// NotificationTokenHeader is the header agents echo the push
// notification token back in.
const NotificationTokenHeader = "X-A2A-Notification-Token"

// VerifyNotificationToken compares the notification token on r against
// want in constant time. An empty want accepts every request.
func VerifyNotificationToken(r *http.Request, want string) bool {
	if want == "" {
		return true
	}
	got := r.Header.Get(NotificationTokenHeader)

	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// NotificationVerifier validates JWTs attached to push notification
// deliveries. Tokens are HS256 signed with a secret shared with the
// agent.
type NotificationVerifier struct {
	secret []byte
	skew   time.Duration
}

// NewNotificationVerifier returns a verifier for the shared secret.
func NewNotificationVerifier(secret string) *NotificationVerifier {
	return &NotificationVerifier{
		secret: []byte(secret),
		skew:   30 * time.Second,
	}
}

// Verify parses and validates tokenString, checking the signature and
// the exp/iat claims.
func (v *NotificationVerifier) Verify(tokenString string) (jwt.Token, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), v.secret),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(v.skew),
	)
	if err != nil {
		return nil, fmt.Errorf("verify notification token: %w", err)
	}

	return token, nil
}

// VerifyRequest validates the bearer JWT on a push delivery request.
func (v *NotificationVerifier) VerifyRequest(r *http.Request) (jwt.Token, error) {
	header := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, fmt.Errorf("verify notification token: missing bearer authorization")
	}

	return v.Verify(tokenString)
}
