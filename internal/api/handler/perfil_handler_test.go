package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/service"
)

type fakePerfilStore struct {
	fakePerfilAPI
	perfiles map[int64]domain.Perfil
	deleted  []int64
}

func (f *fakePerfilStore) GetByID(ctx context.Context, id int64) (*domain.Perfil, error) {
	p, ok := f.perfiles[id]
	if !ok {
		return nil, &domain.RequestError{Status: 404, Message: "Perfil no encontrado"}
	}
	return &p, nil
}

func (f *fakePerfilStore) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newPerfilHandler(perfiles ...domain.Perfil) (*PerfilHandler, *fakePerfilStore, *captureNotifier) {
	api := &fakePerfilStore{perfiles: make(map[int64]domain.Perfil)}
	for _, p := range perfiles {
		api.perfiles[p.ID] = p
	}
	notifier := &captureNotifier{}
	screen := service.NewPerfilScreen(api, service.NewForms(), notifier, zerolog.Nop())
	return NewPerfilHandler(screen, api, notifier), api, notifier
}

func TestPerfilHandler_Delete_AdminRefusedOutright(t *testing.T) {
	handler, api, _ := newPerfilHandler(domain.Perfil{ID: 1, Nombre: domain.PerfilAdmin})

	c, _ := newContext(t, http.MethodDelete, "/perfiles/1?confirm=true", "")
	c.SetPath("/perfiles/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := handler.Delete(c)
	if !errors.Is(err, domain.ErrPerfilProtegido) {
		t.Fatalf("expected protection veto, got %v", err)
	}
	if len(api.deleted) != 0 {
		t.Fatalf("the ADMIN perfil must never be deleted")
	}
}

func TestPerfilHandler_Delete_ConfirmationFlow(t *testing.T) {
	handler, api, notifier := newPerfilHandler(domain.Perfil{ID: 2, Nombre: "OPERADOR"})

	c, rec := newContext(t, http.MethodDelete, "/perfiles/2", "")
	c.SetPath("/perfiles/:id")
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected 428 without confirm, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["target"] != "OPERADOR" {
		t.Fatalf("confirmation must name the perfil, got %+v", resp)
	}

	c, rec = newContext(t, http.MethodDelete, "/perfiles/2?confirm=true", "")
	c.SetPath("/perfiles/:id")
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(api.deleted) != 1 || api.deleted[0] != 2 {
		t.Fatalf("expected one delete for id 2, got %+v", api.deleted)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Perfil eliminado exitosamente" {
		t.Fatalf("unexpected notifications: %+v", notifier.successes)
	}
}

func TestPerfilHandler_Create(t *testing.T) {
	handler, _, notifier := newPerfilHandler()

	c, rec := newContext(t, http.MethodPost, "/perfiles", `{"nombre":"OPERADOR","descripcion":"Gestión diaria"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Perfil creado exitosamente" {
		t.Fatalf("unexpected notifications: %+v", notifier.successes)
	}
}
