// Package auth checks admin console credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier decides whether a username and password may use the
// admin console.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}

var _ CredentialVerifier = (*StaticVerifier)(nil)

// StaticVerifier accepts exactly one configured account. The password is kept
// only as a bcrypt hash.
type StaticVerifier struct {
	username string
	hash     []byte
}

func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &StaticVerifier{username: normalizeUsername(username), hash: hash}, nil
}

// NewStaticVerifierFromHash is for deployments that keep a precomputed hash.
func NewStaticVerifierFromHash(username string, hash []byte) *StaticVerifier {
	return &StaticVerifier{username: normalizeUsername(username), hash: hash}
}

// Verify trims both inputs and compares the username case-insensitively.
func (v *StaticVerifier) Verify(ctx context.Context, username, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if normalizeUsername(username) != v.username {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(strings.TrimSpace(password))); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}
