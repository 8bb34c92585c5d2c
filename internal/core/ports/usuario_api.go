package ports

import (
	"context"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

// UsuarioPayload is the request body for create and update. On update the
// caller keeps Username equal to the stored value and leaves Password empty
// unless it is being reset.
type UsuarioPayload struct {
	Username  string   `json:"username"`
	Password  string   `json:"password,omitempty"`
	Email     string   `json:"email"`
	Nombre    string   `json:"nombre"`
	Apellidos string   `json:"apellidos"`
	Activo    bool     `json:"activo"`
	Perfiles  []string `json:"perfiles"`
}

// UsuarioAPI maps usuario intents onto backend calls, one call per method.
// Inputs are passed through verbatim; outputs are the raw decoded bodies;
// failures surface as *domain.RequestError or *domain.AuthError.
type UsuarioAPI interface {
	List(ctx context.Context, page, size int) (*domain.Page[domain.Usuario], error)
	Search(ctx context.Context, searchTerm string, page, size int) (*domain.Page[domain.Usuario], error)
	ListByPerfil(ctx context.Context, perfilNombre string, page, size int) (*domain.Page[domain.Usuario], error)
	GetByID(ctx context.Context, id int64) (*domain.Usuario, error)
	GetByUsername(ctx context.Context, username string) (*domain.Usuario, error)
	Create(ctx context.Context, payload UsuarioPayload) (*domain.Usuario, error)
	Update(ctx context.Context, id int64, payload UsuarioPayload) (*domain.Usuario, error)
	Delete(ctx context.Context, id int64) error
	CambiarEstado(ctx context.Context, id int64, activo bool) (*domain.Usuario, error)

	// Perfil membership is maintained by explicit add/remove edges, not by
	// submitting the full desired set on update.
	AsignarPerfil(ctx context.Context, usuarioID, perfilID int64) error
	RemoverPerfil(ctx context.Context, usuarioID, perfilID int64) error
}
