package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
)

// PerfilScreen is the perfiles CRUD screen. The ADMIN perfil is protected:
// it can never be deleted and its name can never change, enforced here
// before any request leaves the console and again by the backend.
type PerfilScreen struct {
	*Screen[domain.Perfil, domain.PerfilForm]
	api ports.PerfilAPI
}

func NewPerfilScreen(api ports.PerfilAPI, forms *Forms, notifier ports.Notifier, log zerolog.Logger) *PerfilScreen {
	listing := NewListing[domain.Perfil](
		"perfiles",
		func(ctx context.Context, q ListQuery) (*domain.Page[domain.Perfil], error) {
			return api.List(ctx, q.Page, q.Size)
		},
		func(ctx context.Context, q ListQuery) (*domain.Page[domain.Perfil], error) {
			return api.Search(ctx, q.Search, q.Page, q.Size)
		},
		log,
	)
	screen := NewScreen[domain.Perfil, domain.PerfilForm](
		"perfiles", listing, notifier,
		func(form domain.PerfilForm, _ bool) error { return forms.ValidatePerfil(form) },
		func(p domain.Perfil) error {
			if p.Protegido() {
				return domain.ErrPerfilProtegido
			}
			return nil
		},
		log,
	)
	return &PerfilScreen{Screen: screen, api: api}
}

// OpenCreateDialog opens an empty perfil dialog.
func (s *PerfilScreen) OpenCreateDialog() {
	s.OpenCreate(domain.PerfilForm{})
}

// OpenEditDialog pre-populates the dialog from the selected perfil.
func (s *PerfilScreen) OpenEditDialog(p domain.Perfil) {
	s.OpenEdit(p, domain.FormDesdePerfil(p))
}

// SubmitCreate creates a perfil from the open dialog.
func (s *PerfilScreen) SubmitCreate(ctx context.Context) error {
	return s.Submit(ctx, "create", true,
		func(ctx context.Context, f domain.PerfilForm) error {
			_, err := s.api.Create(ctx, ports.PerfilPayload{Nombre: f.Nombre, Descripcion: f.Descripcion})
			return err
		},
		"Perfil creado exitosamente",
		"Error al crear perfil",
	)
}

// SubmitUpdate updates the perfil under edit. When the protected perfil is
// being edited, the name field is disabled: whatever the form holds, the
// stored name is what gets sent.
func (s *PerfilScreen) SubmitUpdate(ctx context.Context) error {
	_, editing, open := s.Dialog()
	if !open || editing == nil {
		return domain.ErrPerfilNotFound
	}
	id := editing.ID
	nombreFijo := ""
	if editing.Protegido() {
		nombreFijo = editing.Nombre
	}

	return s.Submit(ctx, "update", false,
		func(ctx context.Context, f domain.PerfilForm) error {
			nombre := f.Nombre
			if nombreFijo != "" {
				nombre = nombreFijo
			}
			_, err := s.api.Update(ctx, id, ports.PerfilPayload{Nombre: nombre, Descripcion: f.Descripcion})
			return err
		},
		"Perfil actualizado exitosamente",
		"Error al actualizar perfil",
	)
}

// ConfirmarEliminar deletes the perfil pending confirmation. The protection
// policy was checked when the confirmation opened and is re-checked inside.
func (s *PerfilScreen) ConfirmarEliminar(ctx context.Context) error {
	return s.ConfirmDelete(ctx,
		func(ctx context.Context, p domain.Perfil) error {
			return s.api.Delete(ctx, p.ID)
		},
		"Perfil eliminado exitosamente",
		"Error al eliminar perfil",
	)
}
