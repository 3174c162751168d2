package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPINAuthenticator(t *testing.T) {
	hash, err := HashPIN("4321")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}
	a := NewPINAuthenticator(hash)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   string
		pin     string
		wantErr error
	}{
		{"valid", "manager", "4321", nil},
		{"wrong pin", "manager", "1234", ErrInvalidCredentials},
		{"missing actor", " ", "4321", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authenticate(ctx, tt.actor, tt.pin)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := NewPINAuthenticator("").Authenticate(ctx, "manager", "4321"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Authenticate() without hash error = %v, want ErrNotConfigured", err)
	}
	if _, err := HashPIN("12"); !errors.Is(err, ErrWeakPIN) {
		t.Errorf("HashPIN() short error = %v, want ErrWeakPIN", err)
	}
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)

	token, expiresAt, err := m.Generate("manager", RoleSupervisor)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expiry %v should be in the future", expiresAt)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Actor != "manager" || claims.Role != RoleSupervisor {
		t.Errorf("claims = %+v", claims)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Minute)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		past := NewJWTManager("test-secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		old, _, err := past.Generate("manager", RoleSupervisor)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(old); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
		}
	})
}
