package handler

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/session"
)

// SessionManager is the slice of *session.Manager the auth routes need.
type SessionManager interface {
	Login(ctx context.Context, username, password string) (*domain.Usuario, error)
	Logout()
	State() session.State
	CurrentUser() (*domain.Usuario, bool)
	Claims() (jwt.MapClaims, bool)
}

// AuthHandler serves the login screen's routes and the whoami view.
type AuthHandler struct {
	sessions SessionManager
}

func NewAuthHandler(sessions SessionManager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	State  session.State   `json:"state"`
	User   *domain.Usuario `json:"user,omitempty"`
	Claims jwt.MapClaims   `json:"claims,omitempty"`
}

// LoginScreen is the redirect target for unauthenticated navigation.
func (h *AuthHandler) LoginScreen(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"screen": "login"})
}

// Login authenticates against the backend and establishes the session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{State: h.sessions.State(), User: user})
}

// Logout clears the session. It always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Session is the whoami view: gate state, persisted user, and the token's
// claims for display.
func (h *AuthHandler) Session(c echo.Context) error {
	resp := sessionResponse{State: h.sessions.State()}
	if user, ok := h.sessions.CurrentUser(); ok {
		resp.User = user
	}
	if claims, ok := h.sessions.Claims(); ok {
		resp.Claims = claims
	}
	return c.JSON(http.StatusOK, resp)
}
