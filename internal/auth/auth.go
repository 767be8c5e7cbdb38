// Package auth verifies the HS256 session tokens issued to console users.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrUnauthorized = errors.New("please login to continue")

type Verifier struct {
	secret []byte
	cookie string
}

func New(secret, cookieName string) *Verifier {
	return &Verifier{secret: []byte(secret), cookie: cookieName}
}

// Sign issues a token for subject valid for ttl.
func (v *Verifier) Sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Verify checks the signature and expiry and returns the token subject.
func (v *Verifier) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	return claims.Subject, nil
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header.
func (v *Verifier) TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(v.cookie); err == nil && c.Value != "" {
		return c.Value
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

// Authenticate resolves the subject of the request's token.
func (v *Verifier) Authenticate(r *http.Request) (string, error) {
	token := v.TokenFromRequest(r)
	if token == "" {
		return "", ErrUnauthorized
	}

	return v.Verify(token)
}

type subjectKey struct{}

func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok
}
