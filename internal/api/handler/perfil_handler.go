package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
	"github.com/gestionusuarios/admin-console/internal/core/service"
)

// PerfilHandler drives the perfiles screen over HTTP.
type PerfilHandler struct {
	screen   *service.PerfilScreen
	api      ports.PerfilAPI
	notifier ports.Notifier
}

func NewPerfilHandler(screen *service.PerfilScreen, api ports.PerfilAPI, notifier ports.Notifier) *PerfilHandler {
	return &PerfilHandler{screen: screen, api: api, notifier: notifier}
}

// List handles GET /perfiles with searchTerm, page, and size parameters.
func (h *PerfilHandler) List(c echo.Context) error {
	applyListParams(c, h.screen.Listing())
	return renderListing(c, h.screen.Listing(), h.notifier, "Error al cargar perfiles")
}

// Create handles POST /perfiles.
func (h *PerfilHandler) Create(c echo.Context) error {
	var form domain.PerfilForm
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

// Update handles PUT /perfiles/:id. Editing the ADMIN perfil keeps its name
// whatever the form says.
func (h *PerfilHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var form domain.PerfilForm
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

// Delete handles DELETE /perfiles/:id with the same confirmation contract as
// usuarios. The ADMIN perfil never gets as far as a confirmation: the
// request is refused outright.
func (h *PerfilHandler) Delete(c echo.Context) error {
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
			"target": entity.Nombre,
		})
	}

	if err := h.screen.ConfirmarEliminar(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
