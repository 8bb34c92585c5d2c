package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
)

func TestAuthAPI_SignIn_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/signin" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"token123","id":1,"username":"admin","email":"admin@example.com","nombre":"Administrador","apellidos":"Sistema","activo":true,"perfiles":["ADMIN"]}`))
	}))
	defer server.Close()

	api := NewAuthAPI(NewClient(server.URL))
	session, err := api.SignIn(context.Background(), ports.Credentials{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if session.Token != "token123" {
		t.Fatalf("unexpected token %q", session.Token)
	}
	if session.User.Username != "admin" || !session.User.TienePerfil("ADMIN") {
		t.Fatalf("unexpected user: %+v", session.User)
	}
}

func TestAuthAPI_SignIn_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
	}))
	defer server.Close()

	api := NewAuthAPI(NewClient(server.URL))
	_, err := api.SignIn(context.Background(), ports.Credentials{Username: "admin", Password: "wrong"})

	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if ae.Message != "Credenciales inválidas" {
		t.Fatalf("expected backend message, got %q", ae.Message)
	}
}

func TestAuthAPI_SignIn_BackendDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	api := NewAuthAPI(NewClient(server.URL))
	_, err := api.SignIn(context.Background(), ports.Credentials{Username: "admin", Password: "admin123"})

	// No session either way: transport failures surface as auth errors too.
	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected auth error, got %v", err)
	}
}
