package rest

import (
	"context"
	"net/url"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
)

// PerfilAPI implements ports.PerfilAPI over the /perfiles endpoints.
type PerfilAPI struct {
	client *Client
}

func NewPerfilAPI(client *Client) *PerfilAPI {
	return &PerfilAPI{client: client}
}

func (a *PerfilAPI) List(ctx context.Context, page, size int) (*domain.Page[domain.Perfil], error) {
	var out domain.Page[domain.Perfil]
	if err := a.client.get(ctx, "/perfiles", pageQuery(page, size), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PerfilAPI) Search(ctx context.Context, searchTerm string, page, size int) (*domain.Page[domain.Perfil], error) {
	q := pageQuery(page, size)
	q.Set("searchTerm", searchTerm)
	var out domain.Page[domain.Perfil]
	if err := a.client.get(ctx, "/perfiles/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PerfilAPI) GetByID(ctx context.Context, id int64) (*domain.Perfil, error) {
	var out domain.Perfil
	if err := a.client.get(ctx, idPath("/perfiles", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PerfilAPI) GetByNombre(ctx context.Context, nombre string) (*domain.Perfil, error) {
	var out domain.Perfil
	if err := a.client.get(ctx, "/perfiles/nombre/"+url.PathEscape(nombre), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PerfilAPI) Create(ctx context.Context, payload ports.PerfilPayload) (*domain.Perfil, error) {
	var out domain.Perfil
	if err := a.client.post(ctx, "/perfiles", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PerfilAPI) Update(ctx context.Context, id int64, payload ports.PerfilPayload) (*domain.Perfil, error) {
	var out domain.Perfil
	if err := a.client.put(ctx, idPath("/perfiles", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PerfilAPI) Delete(ctx context.Context, id int64) error {
	return a.client.delete(ctx, idPath("/perfiles", id))
}
