package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
)

// perfilesFormCap bounds the perfil options loaded into the usuario dialog's
// multi-select.
const perfilesFormCap = 50

// UsuarioScreen is the usuarios CRUD screen: paginated searchable table,
// create/edit dialog, delete confirmation, estado toggle, and perfil
// membership edges.
type UsuarioScreen struct {
	*Screen[domain.Usuario, domain.UsuarioForm]
	api      ports.UsuarioAPI
	perfiles ports.PerfilAPI
}

func NewUsuarioScreen(api ports.UsuarioAPI, perfiles ports.PerfilAPI, forms *Forms, notifier ports.Notifier, log zerolog.Logger) *UsuarioScreen {
	listing := NewListing[domain.Usuario](
		"usuarios",
		func(ctx context.Context, q ListQuery) (*domain.Page[domain.Usuario], error) {
			return api.List(ctx, q.Page, q.Size)
		},
		func(ctx context.Context, q ListQuery) (*domain.Page[domain.Usuario], error) {
			return api.Search(ctx, q.Search, q.Page, q.Size)
		},
		log,
	)
	screen := NewScreen[domain.Usuario, domain.UsuarioForm](
		"usuarios", listing, notifier, forms.ValidateUsuario, nil, log,
	)
	return &UsuarioScreen{Screen: screen, api: api, perfiles: perfiles}
}

// OpenCreateDialog opens the dialog with create defaults.
func (s *UsuarioScreen) OpenCreateDialog() {
	s.OpenCreate(domain.NuevoUsuarioForm())
}

// OpenEditDialog pre-populates the dialog from the selected usuario.
func (s *UsuarioScreen) OpenEditDialog(u domain.Usuario) {
	s.OpenEdit(u, domain.FormDesdeUsuario(u))
}

// SubmitCreate creates a usuario from the open dialog.
func (s *UsuarioScreen) SubmitCreate(ctx context.Context) error {
	return s.Submit(ctx, "create", true,
		func(ctx context.Context, f domain.UsuarioForm) error {
			_, err := s.api.Create(ctx, ports.UsuarioPayload{
				Username:  f.Username,
				Password:  f.Password,
				Email:     f.Email,
				Nombre:    f.Nombre,
				Apellidos: f.Apellidos,
				Activo:    f.Activo,
				Perfiles:  f.Perfiles,
			})
			return err
		},
		"Usuario creado exitosamente",
		"Error al crear usuario",
	)
}

// SubmitUpdate updates the usuario under edit. The username sent is always
// the stored one: it is immutable after creation and the field is disabled
// in edit mode.
func (s *UsuarioScreen) SubmitUpdate(ctx context.Context) error {
	_, editing, open := s.Dialog()
	if !open || editing == nil {
		return domain.ErrUsuarioNotFound
	}
	id, username := editing.ID, editing.Username

	return s.Submit(ctx, "update", false,
		func(ctx context.Context, f domain.UsuarioForm) error {
			_, err := s.api.Update(ctx, id, ports.UsuarioPayload{
				Username:  username,
				Password:  f.Password,
				Email:     f.Email,
				Nombre:    f.Nombre,
				Apellidos: f.Apellidos,
				Activo:    f.Activo,
				Perfiles:  f.Perfiles,
			})
			return err
		},
		"Usuario actualizado exitosamente",
		"Error al actualizar usuario",
	)
}

// ConfirmarEliminar deletes the usuario pending confirmation.
func (s *UsuarioScreen) ConfirmarEliminar(ctx context.Context) error {
	return s.ConfirmDelete(ctx,
		func(ctx context.Context, u domain.Usuario) error {
			return s.api.Delete(ctx, u.ID)
		},
		"Usuario eliminado exitosamente",
		"Error al eliminar usuario",
	)
}

// CambiarEstado toggles the activo switch. The table refreshes through
// invalidation; no dialog is involved.
func (s *UsuarioScreen) CambiarEstado(ctx context.Context, id int64, activo bool) error {
	return s.Run(ctx, "estado",
		func(ctx context.Context) error {
			_, err := s.api.CambiarEstado(ctx, id, activo)
			return err
		},
		"Estado del usuario actualizado",
		"Error al cambiar estado",
	)
}

// AsignarPerfil adds one membership edge.
func (s *UsuarioScreen) AsignarPerfil(ctx context.Context, usuarioID, perfilID int64) error {
	return s.Run(ctx, "asignar",
		func(ctx context.Context) error {
			return s.api.AsignarPerfil(ctx, usuarioID, perfilID)
		},
		"Perfil asignado exitosamente",
		"Error al asignar perfil",
	)
}

// RemoverPerfil removes one membership edge.
func (s *UsuarioScreen) RemoverPerfil(ctx context.Context, usuarioID, perfilID int64) error {
	return s.Run(ctx, "remover",
		func(ctx context.Context) error {
			return s.api.RemoverPerfil(ctx, usuarioID, perfilID)
		},
		"Perfil removido exitosamente",
		"Error al remover perfil",
	)
}

// PerfilesParaFormulario loads the perfil options offered in the dialog's
// multi-select.
func (s *UsuarioScreen) PerfilesParaFormulario(ctx context.Context) ([]domain.Perfil, error) {
	page, err := s.perfiles.List(ctx, 0, perfilesFormCap)
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}
