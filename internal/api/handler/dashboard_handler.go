package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestionusuarios/admin-console/internal/core/service"
)

// DashboardHandler serves the aggregate view.
type DashboardHandler struct {
	dashboard *service.Dashboard
}

func NewDashboardHandler(dashboard *service.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /dashboard.
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.dashboard.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// NotificationsHandler serves the retained toast log.
type NotificationsHandler struct {
	notifications *service.NotificationLog
}

func NewNotificationsHandler(notifications *service.NotificationLog) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// Recent handles GET /notifications.
func (h *NotificationsHandler) Recent(c echo.Context) error {
	return c.JSON(http.StatusOK, h.notifications.Recent())
}
