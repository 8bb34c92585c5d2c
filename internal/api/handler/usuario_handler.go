package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
	"github.com/gestionusuarios/admin-console/internal/core/service"
)

// UsuarioHandler drives the usuarios screen over HTTP.
type UsuarioHandler struct {
	screen   *service.UsuarioScreen
	api      ports.UsuarioAPI
	notifier ports.Notifier
}

func NewUsuarioHandler(screen *service.UsuarioScreen, api ports.UsuarioAPI, notifier ports.Notifier) *UsuarioHandler {
	return &UsuarioHandler{screen: screen, api: api, notifier: notifier}
}

// applyListParams folds the request's searchTerm/page/size into the listing
// state. Search and size changes reset the page through the listing itself.
func applyListParams[T any](c echo.Context, l *service.Listing[T]) {
	l.SetSearch(c.QueryParam("searchTerm"))
	if raw := c.QueryParam("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			l.SetPageSize(size)
		}
	}
	if raw := c.QueryParam("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			l.SetPage(page)
		}
	}
}

// renderListing fetches under the current key and renders the page. Fetch
// failures surface on the notification channel while the table shows the
// retained rows or an empty state; auth failures propagate and tear the
// session down.
func renderListing[T any](c echo.Context, l *service.Listing[T], notifier ports.Notifier, fallback string) error {
	page, err := l.Fetch(c.Request().Context())
	if err != nil {
		var ae *domain.AuthError
		if errors.As(err, &ae) {
			return err
		}
		notifier.Error(domain.MensajeDe(err, fallback))
	}
	if page == nil {
		q := l.Query()
		page = &domain.Page[T]{Content: []T{}, Page: q.Page, Size: q.Size}
	}
	return c.JSON(http.StatusOK, page)
}

// List handles GET /usuarios with searchTerm, page, and size parameters.
func (h *UsuarioHandler) List(c echo.Context) error {
	applyListParams(c, h.screen.Listing())
	return renderListing(c, h.screen.Listing(), h.notifier, "Error al cargar usuarios")
}

// Create handles POST /usuarios: open the create dialog, bind the form, and
// submit it under the mutation contract.
func (h *UsuarioHandler) Create(c echo.Context) error {
	var form domain.UsuarioForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	h.screen.OpenCreateDialog()
	h.screen.SetForm(form)
	if err := h.screen.SubmitCreate(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "ok"})
}

// Update handles PUT /usuarios/:id. The dialog is pre-populated from the
// stored entity, so the username sent is always the stored one.
func (h *UsuarioHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var form domain.UsuarioForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	entity, err := h.api.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	h.screen.OpenEditDialog(*entity)
	h.screen.SetForm(form)
	if err := h.screen.SubmitUpdate(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Delete handles DELETE /usuarios/:id. Without confirm=true the request only
// opens the confirmation, naming the target; the caller must repeat the call
// confirmed to actually delete.
func (h *UsuarioHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	entity, err := h.api.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := h.screen.RequestDelete(*entity); err != nil {
		return err
	}

	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusPreconditionRequired, echo.Map{
			"status": "confirmación pendiente",
			"target": entity.Username,
		})
	}

	if err := h.screen.ConfirmarEliminar(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CambiarEstado handles PATCH /usuarios/:id/estado?activo=bool.
func (h *UsuarioHandler) CambiarEstado(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	activo, err := strconv.ParseBool(c.QueryParam("activo"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid activo parameter")
	}

	if err := h.screen.CambiarEstado(c.Request().Context(), id, activo); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// AsignarPerfil handles POST /usuarios/:usuarioId/perfiles/:perfilId.
func (h *UsuarioHandler) AsignarPerfil(c echo.Context) error {
	usuarioID, err := pathID(c, "usuarioId")
	if err != nil {
		return err
	}
	perfilID, err := pathID(c, "perfilId")
	if err != nil {
		return err
	}
	if err := h.screen.AsignarPerfil(c.Request().Context(), usuarioID, perfilID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// RemoverPerfil handles DELETE /usuarios/:usuarioId/perfiles/:perfilId.
func (h *UsuarioHandler) RemoverPerfil(c echo.Context) error {
	usuarioID, err := pathID(c, "usuarioId")
	if err != nil {
		return err
	}
	perfilID, err := pathID(c, "perfilId")
	if err != nil {
		return err
	}
	if err := h.screen.RemoverPerfil(c.Request().Context(), usuarioID, perfilID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// PerfilOptions handles GET /usuarios/perfil-options: the choices offered by
// the dialog's multi-select.
func (h *UsuarioHandler) PerfilOptions(c echo.Context) error {
	opciones, err := h.screen.PerfilesParaFormulario(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opciones)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
