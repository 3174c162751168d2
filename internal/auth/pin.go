package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid supervisor name or PIN")
	ErrNotConfigured      = errors.New("supervisor login is not configured")
	ErrWeakPIN            = errors.New("PIN must be at least 4 characters")
)

// PINAuthenticator checks supervisor PINs against a single bcrypt hash shared
// by all supervisors. The actor name is recorded for audit, not verified.
type PINAuthenticator struct {
	hash []byte
}

var _ Authenticator = (*PINAuthenticator)(nil)

// NewPINAuthenticator creates an authenticator from a bcrypt hash. An empty
// hash disables supervisor login.
func NewPINAuthenticator(hash string) *PINAuthenticator {
	return &PINAuthenticator{hash: []byte(hash)}
}

// HashPIN produces the bcrypt hash to put in configuration.
func HashPIN(pin string) (string, error) {
	if len(pin) < 4 {
		return "", ErrWeakPIN
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hashed), nil
}

// Authenticate verifies the PIN.
func (a *PINAuthenticator) Authenticate(ctx context.Context, actor, credential string) error {
	if len(a.hash) == 0 {
		return ErrNotConfigured
	}
	if strings.TrimSpace(actor) == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
