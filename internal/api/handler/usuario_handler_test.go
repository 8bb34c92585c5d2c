package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
	"github.com/gestionusuarios/admin-console/internal/core/service"
)

type fakeUsuarioAPI struct {
	usuarios map[int64]domain.Usuario
	listErr  error
	deleted  []int64
}

func newFakeUsuarioAPI(usuarios ...domain.Usuario) *fakeUsuarioAPI {
	f := &fakeUsuarioAPI{usuarios: make(map[int64]domain.Usuario)}
	for _, u := range usuarios {
		f.usuarios[u.ID] = u
	}
	return f
}

func (f *fakeUsuarioAPI) page() *domain.Page[domain.Usuario] {
	content := make([]domain.Usuario, 0, len(f.usuarios))
	for _, u := range f.usuarios {
		content = append(content, u)
	}
	return &domain.Page[domain.Usuario]{Content: content, TotalElements: int64(len(content)), Size: 10}
}

func (f *fakeUsuarioAPI) List(ctx context.Context, page, size int) (*domain.Page[domain.Usuario], error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.page(), nil
}

func (f *fakeUsuarioAPI) Search(ctx context.Context, term string, page, size int) (*domain.Page[domain.Usuario], error) {
	return f.List(ctx, page, size)
}

func (f *fakeUsuarioAPI) ListByPerfil(ctx context.Context, nombre string, page, size int) (*domain.Page[domain.Usuario], error) {
	return f.List(ctx, page, size)
}

func (f *fakeUsuarioAPI) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	u, ok := f.usuarios[id]
	if !ok {
		return nil, &domain.RequestError{Status: 404, Message: "Usuario no encontrado"}
	}
	return &u, nil
}

func (f *fakeUsuarioAPI) GetByUsername(ctx context.Context, username string) (*domain.Usuario, error) {
	for _, u := range f.usuarios {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, &domain.RequestError{Status: 404, Message: "Usuario no encontrado"}
}

func (f *fakeUsuarioAPI) Create(ctx context.Context, p ports.UsuarioPayload) (*domain.Usuario, error) {
	u := domain.Usuario{ID: int64(len(f.usuarios) + 1), Username: p.Username, Email: p.Email, Activo: p.Activo}
	f.usuarios[u.ID] = u
	return &u, nil
}

func (f *fakeUsuarioAPI) Update(ctx context.Context, id int64, p ports.UsuarioPayload) (*domain.Usuario, error) {
	u, ok := f.usuarios[id]
	if !ok {
		return nil, &domain.RequestError{Status: 404, Message: "Usuario no encontrado"}
	}
	u.Email = p.Email
	f.usuarios[id] = u
	return &u, nil
}

func (f *fakeUsuarioAPI) Delete(ctx context.Context, id int64) error {
	delete(f.usuarios, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUsuarioAPI) CambiarEstado(ctx context.Context, id int64, activo bool) (*domain.Usuario, error) {
	u, ok := f.usuarios[id]
	if !ok {
		return nil, &domain.RequestError{Status: 404, Message: "Usuario no encontrado"}
	}
	u.Activo = activo
	f.usuarios[id] = u
	return &u, nil
}

func (f *fakeUsuarioAPI) AsignarPerfil(ctx context.Context, usuarioID, perfilID int64) error {
	return nil
}

func (f *fakeUsuarioAPI) RemoverPerfil(ctx context.Context, usuarioID, perfilID int64) error {
	return nil
}

type fakePerfilAPI struct{}

func (f *fakePerfilAPI) List(ctx context.Context, page, size int) (*domain.Page[domain.Perfil], error) {
	return &domain.Page[domain.Perfil]{
		Content:       []domain.Perfil{{ID: 1, Nombre: "ADMIN"}, {ID: 2, Nombre: "USER"}},
		TotalElements: 2,
	}, nil
}

func (f *fakePerfilAPI) Search(ctx context.Context, term string, page, size int) (*domain.Page[domain.Perfil], error) {
	return f.List(ctx, page, size)
}

func (f *fakePerfilAPI) GetByID(ctx context.Context, id int64) (*domain.Perfil, error) {
	return nil, &domain.RequestError{Status: 404, Message: "Perfil no encontrado"}
}

func (f *fakePerfilAPI) GetByNombre(ctx context.Context, nombre string) (*domain.Perfil, error) {
	return nil, &domain.RequestError{Status: 404, Message: "Perfil no encontrado"}
}

func (f *fakePerfilAPI) Create(ctx context.Context, p ports.PerfilPayload) (*domain.Perfil, error) {
	return &domain.Perfil{ID: 3, Nombre: p.Nombre}, nil
}

func (f *fakePerfilAPI) Update(ctx context.Context, id int64, p ports.PerfilPayload) (*domain.Perfil, error) {
	return &domain.Perfil{ID: id, Nombre: p.Nombre}, nil
}

func (f *fakePerfilAPI) Delete(ctx context.Context, id int64) error { return nil }

type captureNotifier struct {
	successes []string
	errors    []string
}

func (n *captureNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *captureNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func newUsuarioHandler(api *fakeUsuarioAPI) (*UsuarioHandler, *captureNotifier) {
	notifier := &captureNotifier{}
	screen := service.NewUsuarioScreen(api, &fakePerfilAPI{}, service.NewForms(), notifier, zerolog.Nop())
	return NewUsuarioHandler(screen, api, notifier), notifier
}

func TestUsuarioHandler_List(t *testing.T) {
	api := newFakeUsuarioAPI(domain.Usuario{ID: 1, Username: "admin", Activo: true})
	handler, notifier := newUsuarioHandler(api)

	c, rec := newContext(t, http.MethodGet, "/usuarios?page=0&size=10", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page domain.Page[domain.Usuario]
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if page.TotalElements != 1 || page.Content[0].Username != "admin" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if len(notifier.errors) != 0 {
		t.Fatalf("unexpected notifications: %+v", notifier.errors)
	}
}

func TestUsuarioHandler_List_FetchFailureRendersEmptyPage(t *testing.T) {
	api := newFakeUsuarioAPI()
	api.listErr = &domain.RequestError{Status: 500, Message: "backend roto"}
	handler, notifier := newUsuarioHandler(api)

	c, rec := newContext(t, http.MethodGet, "/usuarios", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("fetch failures must not fail the request: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page domain.Page[domain.Usuario]
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(page.Content) != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "backend roto" {
		t.Fatalf("expected one error notification, got %+v", notifier.errors)
	}
}

func TestUsuarioHandler_List_AuthFailurePropagates(t *testing.T) {
	api := newFakeUsuarioAPI()
	api.listErr = &domain.AuthError{Message: "invalid token"}
	handler, notifier := newUsuarioHandler(api)

	c, _ := newContext(t, http.MethodGet, "/usuarios", "")
	err := handler.List(c)

	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("auth failures must propagate, got %v", err)
	}
	if len(notifier.errors) != 0 {
		t.Fatalf("auth failures tear the session down, they are not toasted: %+v", notifier.errors)
	}
}

func TestUsuarioHandler_Create(t *testing.T) {
	api := newFakeUsuarioAPI()
	handler, notifier := newUsuarioHandler(api)

	body := `{"username":"jdoe","password":"secret1","email":"jdoe@example.com","nombre":"John","apellidos":"Doe","activo":true}`
	c, rec := newContext(t, http.MethodPost, "/usuarios", body)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Usuario creado exitosamente" {
		t.Fatalf("unexpected notifications: %+v", notifier.successes)
	}
}

func TestUsuarioHandler_Create_ValidationPropagates(t *testing.T) {
	handler, notifier := newUsuarioHandler(newFakeUsuarioAPI())

	c, _ := newContext(t, http.MethodPost, "/usuarios", `{"email":"bad"}`)
	err := handler.Create(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(notifier.errors) != 0 {
		t.Fatalf("validation failures never notify: %+v", notifier.errors)
	}
}

func TestUsuarioHandler_Delete_RequiresConfirmation(t *testing.T) {
	api := newFakeUsuarioAPI(domain.Usuario{ID: 3, Username: "jdoe"})
	handler, _ := newUsuarioHandler(api)

	c, rec := newContext(t, http.MethodDelete, "/usuarios/3", "")
	c.SetPath("/usuarios/:id")
	c.SetParamNames("id")
	c.SetParamValues("3")

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
	if resp["target"] != "jdoe" {
		t.Fatalf("confirmation must name the target, got %+v", resp)
	}
	if len(api.deleted) != 0 {
		t.Fatalf("nothing must be deleted without confirmation")
	}
}

func TestUsuarioHandler_Delete_Confirmed(t *testing.T) {
	api := newFakeUsuarioAPI(domain.Usuario{ID: 3, Username: "jdoe"})
	handler, notifier := newUsuarioHandler(api)

	c, rec := newContext(t, http.MethodDelete, "/usuarios/3?confirm=true", "")
	c.SetPath("/usuarios/:id")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(api.deleted) != 1 || api.deleted[0] != 3 {
		t.Fatalf("expected exactly one delete for id 3, got %+v", api.deleted)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Usuario eliminado exitosamente" {
		t.Fatalf("unexpected notifications: %+v", notifier.successes)
	}
}

func TestUsuarioHandler_CambiarEstado_InvalidParam(t *testing.T) {
	handler, _ := newUsuarioHandler(newFakeUsuarioAPI(domain.Usuario{ID: 5}))

	c, _ := newContext(t, http.MethodPatch, "/usuarios/5/estado?activo=maybe", "")
	c.SetPath("/usuarios/:id/estado")
	c.SetParamNames("id")
	c.SetParamValues("5")

	err := handler.CambiarEstado(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUsuarioHandler_PerfilOptions(t *testing.T) {
	handler, _ := newUsuarioHandler(newFakeUsuarioAPI())

	c, rec := newContext(t, http.MethodGet, "/usuarios/perfil-options", "")
	if err := handler.PerfilOptions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var opciones []domain.Perfil
	if err := json.Unmarshal(rec.Body.Bytes(), &opciones); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(opciones) != 2 || opciones[0].Nombre != "ADMIN" {
		t.Fatalf("unexpected options: %+v", opciones)
	}
}
