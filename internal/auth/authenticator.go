package auth

import (
	"context"
)

// Authenticator verifies a supervisor's credential. Implementations can swap
// the PIN check for another mechanism without touching the service layer.
type Authenticator interface {
	// Authenticate returns nil when credential is valid for actor.
	Authenticate(ctx context.Context, actor, credential string) error
}
