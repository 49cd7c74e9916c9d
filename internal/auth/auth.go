// Package auth supplies bearer credentials to the REST and notification clients.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrNoToken        = errors.New("no bearer token configured")
	ErrMissingSubject = errors.New("token has no subject claim")
)

// TokenProvider returns the bearer credential to present to the backend.
// The identity provider behind it is out of scope; implementations only
// need to hand back a current token.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token
type StaticToken string

func (s StaticToken) Token(ctx context.Context) (string, error) {
	tok := strings.TrimSpace(string(s))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// FileToken reads the token from a file on every call so that an external
// process can rotate it.
type FileToken struct {
	Path string
}

func (f FileToken) Token(ctx context.Context) (string, error) {
	if f.Path == "" {
		return "", ErrNoToken
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return StaticToken(data).Token(ctx)
}

// UserID extracts the stable user identifier (the "sub" claim) from a JWT.
// The signature is not verified here; the backend does that.
func UserID(token string) (string, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrMissingSubject
	}
	return sub, nil
}
