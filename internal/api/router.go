// Package api is the console's routing shell: the echo route table, the
// session gate, and the handlers that drive the screens.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/api/handler"
	"github.com/gestionusuarios/admin-console/internal/api/middleware"
	"github.com/gestionusuarios/admin-console/internal/core/service"
	"github.com/gestionusuarios/admin-console/internal/infrastructure/config"
	"github.com/gestionusuarios/admin-console/internal/infrastructure/rest"
	"github.com/gestionusuarios/admin-console/internal/infrastructure/storage"
	"github.com/gestionusuarios/admin-console/internal/session"
)

// NewRouter wires the whole console: session store, rest client, screens,
// dashboard, and the route table behind the session gate.
func NewRouter(cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Session plumbing ---
	// The store is the single source of truth; the rest client reads the
	// token straight from it, and any 401/403 response tears the session
	// down through the manager.
	store := storage.NewFileStore(cfg.Session.File)

	var manager *session.Manager
	client := rest.NewClient(cfg.Backend.BaseURL,
		rest.WithTimeout(cfg.Backend.Timeout),
		rest.WithTokenProvider(store.Token),
		rest.WithAuthFailureHook(func() { manager.Invalidate() }),
		rest.WithLogger(log),
	)
	manager = session.NewManager(store, rest.NewAuthAPI(client), log)
	manager.Initialize()

	// --- Screens and dashboard ---
	usuarioAPI := rest.NewUsuarioAPI(client)
	perfilAPI := rest.NewPerfilAPI(client)
	forms := service.NewForms()
	notifications := service.NewNotificationLog(log)

	usuarioScreen := service.NewUsuarioScreen(usuarioAPI, perfilAPI, forms, notifications, log)
	perfilScreen := service.NewPerfilScreen(perfilAPI, forms, notifications, log)
	dashboard := service.NewDashboard(usuarioAPI, perfilAPI, cfg.Backend.DashboardCap, log)

	authHandler := handler.NewAuthHandler(manager)
	usuarioHandler := handler.NewUsuarioHandler(usuarioScreen, usuarioAPI, notifications)
	perfilHandler := handler.NewPerfilHandler(perfilScreen, perfilAPI, notifications)
	dashboardHandler := handler.NewDashboardHandler(dashboard)
	notificationsHandler := handler.NewNotificationsHandler(notifications)

	// --- Public routes ---
	e.GET("/login", authHandler.LoginScreen)
	e.POST("/login", authHandler.Login)
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(client).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Protected routes ---
	protected := e.Group("", middleware.SessionGate(manager))
	protected.GET("/session", authHandler.Session)
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/dashboard", dashboardHandler.Stats)
	protected.GET("/notifications", notificationsHandler.Recent)

	usuarios := protected.Group("/usuarios")
	usuarios.GET("", usuarioHandler.List)
	usuarios.GET("/perfil-options", usuarioHandler.PerfilOptions)
	usuarios.POST("", usuarioHandler.Create)
	usuarios.PUT("/:id", usuarioHandler.Update)
	usuarios.DELETE("/:id", usuarioHandler.Delete)
	usuarios.PATCH("/:id/estado", usuarioHandler.CambiarEstado)
	usuarios.POST("/:usuarioId/perfiles/:perfilId", usuarioHandler.AsignarPerfil)
	usuarios.DELETE("/:usuarioId/perfiles/:perfilId", usuarioHandler.RemoverPerfil)

	perfiles := protected.Group("/perfiles")
	perfiles.GET("", perfilHandler.List)
	perfiles.POST("", perfilHandler.Create)
	perfiles.PUT("/:id", perfilHandler.Update)
	perfiles.DELETE("/:id", perfilHandler.Delete)

	return e
}
