package ports

import (
	"context"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

// PerfilPayload is the request body for perfil create and update.
type PerfilPayload struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// PerfilAPI maps perfil intents onto backend calls, mirroring UsuarioAPI.
type PerfilAPI interface {
	List(ctx context.Context, page, size int) (*domain.Page[domain.Perfil], error)
	Search(ctx context.Context, searchTerm string, page, size int) (*domain.Page[domain.Perfil], error)
	GetByID(ctx context.Context, id int64) (*domain.Perfil, error)
	GetByNombre(ctx context.Context, nombre string) (*domain.Perfil, error)
	Create(ctx context.Context, payload PerfilPayload) (*domain.Perfil, error)
	Update(ctx context.Context, id int64, payload PerfilPayload) (*domain.Perfil, error)
	Delete(ctx context.Context, id int64) error
}
