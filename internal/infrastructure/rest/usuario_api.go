package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
)

// UsuarioAPI implements ports.UsuarioAPI over the /usuarios endpoints.
// It is stateless: each method is exactly one HTTP call with its inputs
// passed through verbatim.
type UsuarioAPI struct {
	client *Client
}

func NewUsuarioAPI(client *Client) *UsuarioAPI {
	return &UsuarioAPI{client: client}
}

func (a *UsuarioAPI) List(ctx context.Context, page, size int) (*domain.Page[domain.Usuario], error) {
	var out domain.Page[domain.Usuario]
	if err := a.client.get(ctx, "/usuarios", pageQuery(page, size), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsuarioAPI) Search(ctx context.Context, searchTerm string, page, size int) (*domain.Page[domain.Usuario], error) {
	q := pageQuery(page, size)
	q.Set("searchTerm", searchTerm)
	var out domain.Page[domain.Usuario]
	if err := a.client.get(ctx, "/usuarios/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsuarioAPI) ListByPerfil(ctx context.Context, perfilNombre string, page, size int) (*domain.Page[domain.Usuario], error) {
	var out domain.Page[domain.Usuario]
	if err := a.client.get(ctx, "/usuarios/perfil/"+url.PathEscape(perfilNombre), pageQuery(page, size), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsuarioAPI) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	var out domain.Usuario
	if err := a.client.get(ctx, idPath("/usuarios", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsuarioAPI) GetByUsername(ctx context.Context, username string) (*domain.Usuario, error) {
	var out domain.Usuario
	if err := a.client.get(ctx, "/usuarios/username/"+url.PathEscape(username), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsuarioAPI) Create(ctx context.Context, payload ports.UsuarioPayload) (*domain.Usuario, error) {
	var out domain.Usuario
	if err := a.client.post(ctx, "/usuarios", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsuarioAPI) Update(ctx context.Context, id int64, payload ports.UsuarioPayload) (*domain.Usuario, error) {
	var out domain.Usuario
	if err := a.client.put(ctx, idPath("/usuarios", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsuarioAPI) Delete(ctx context.Context, id int64) error {
	return a.client.delete(ctx, idPath("/usuarios", id))
}

func (a *UsuarioAPI) CambiarEstado(ctx context.Context, id int64, activo bool) (*domain.Usuario, error) {
	q := url.Values{"activo": []string{strconv.FormatBool(activo)}}
	var out domain.Usuario
	if err := a.client.patch(ctx, idPath("/usuarios", id)+"/estado", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsuarioAPI) AsignarPerfil(ctx context.Context, usuarioID, perfilID int64) error {
	return a.client.post(ctx, idPath("/usuarios", usuarioID)+idPath("/perfiles", perfilID), nil, nil)
}

func (a *UsuarioAPI) RemoverPerfil(ctx context.Context, usuarioID, perfilID int64) error {
	return a.client.delete(ctx, idPath("/usuarios", usuarioID) + idPath("/perfiles", perfilID))
}
