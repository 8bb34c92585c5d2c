package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all console errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the console's error taxonomy to deterministic HTTP codes.
//   - Surfaces backend-supplied messages on failed proxied calls.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Form rule violations stay in the form layer: inline field messages,
	// no notification, nothing on the wire to the backend.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validación fallida", Fields: ve.Fields}
	}

	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return http.StatusUnauthorized, errorResponse{Error: domain.MensajeDe(ae, "sesión inválida")}
	}

	var re *domain.RequestError
	if errors.As(err, &re) {
		status := re.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		return status, errorResponse{Error: domain.MensajeDe(re, "error de red")}
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "no autenticado"}
	case errors.Is(err, domain.ErrPerfilProtegido):
		return http.StatusConflict, errorResponse{Error: "el perfil ADMIN está protegido"}
	case errors.Is(err, domain.ErrConfirmacionRequerida):
		return http.StatusPreconditionRequired, errorResponse{Error: "se requiere confirmación"}
	case errors.Is(err, domain.ErrUsuarioNotFound), errors.Is(err, domain.ErrPerfilNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
