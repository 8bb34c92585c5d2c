package ports

import (
	"context"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

// Credentials are sent to the backend as-is.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthAPI exchanges credentials for a session.
type AuthAPI interface {
	SignIn(ctx context.Context, creds Credentials) (*domain.Session, error)
}

// SessionStore persists the session in durable client-side storage. The
// store is the single source of truth for authentication state: token
// present means authenticated.
type SessionStore interface {
	// Save persists the token and the user record together.
	Save(s domain.Session) error
	// Clear removes both unconditionally. It never fails.
	Clear()
	// Token returns the persisted token, false if none.
	Token() (string, bool)
	// CurrentUser returns the persisted user record, false if absent or
	// malformed.
	CurrentUser() (*domain.Usuario, bool)
}
