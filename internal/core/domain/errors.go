package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrUsuarioNotFound = errors.New("usuario not found")
var ErrUsuarioExists = errors.New("usuario already exists")
var ErrPerfilNotFound = errors.New("perfil not found")
var ErrPerfilExists = errors.New("perfil already exists")

// ErrPerfilProtegido is returned when an action targets the ADMIN perfil.
var ErrPerfilProtegido = errors.New("perfil is protected")

// ErrConfirmacionRequerida is returned when a destructive action is issued
// without its explicit confirmation step.
var ErrConfirmacionRequerida = errors.New("confirmation required")

// AuthError marks an authentication failure: a rejected login, or any call
// answered with 401/403. The latter invalidates the whole session, not just
// the failing call.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return "auth: " + e.Message
	}
	return "auth: authentication failed"
}

func (e *AuthError) Unwrap() error { return e.Err }

// RequestError is any other non-2xx response or transport failure. Status is
// 0 for transport and timeout errors. Message carries the backend-supplied
// human-readable message when one was present in the response body.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
	case e.Status > 0:
		return fmt.Sprintf("request failed (%d)", e.Status)
	default:
		return "request failed: network error"
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// ValidationError carries per-field form rule violations. It is resolved
// entirely within the form layer and never reaches the network or the
// notification channel.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	sort.Strings(msgs)
	return "validation: " + strings.Join(msgs, "; ")
}

// MensajeDe extracts the backend-provided message from err when present,
// falling back to the given generic string. Used to build error
// notifications for failed mutations.
func MensajeDe(err error, fallback string) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	var ae *AuthError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
