package rest

import (
	"context"
	"errors"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
)

// AuthAPI implements ports.AuthAPI over POST /auth/signin.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// signinResponse mirrors the backend's JwtResponse: the token plus the user
// fields flattened alongside it.
type signinResponse struct {
	Token string `json:"token"`
	domain.Usuario
}

// SignIn exchanges credentials for a session. Rejected credentials and
// unreachable backends both surface as *domain.AuthError, since either way
// no session was established.
func (a *AuthAPI) SignIn(ctx context.Context, creds ports.Credentials) (*domain.Session, error) {
	var resp signinResponse
	if err := a.client.post(ctx, "/auth/signin", creds, &resp); err != nil {
		var ae *domain.AuthError
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, &domain.AuthError{Message: domain.MensajeDe(err, ""), Err: err}
	}
	return &domain.Session{Token: resp.Token, User: resp.Usuario}, nil
}
