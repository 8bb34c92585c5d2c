// Package mockapi is an in-memory implementation of the REST contract the
// console depends on: /auth/signin plus the paginated /usuarios and
// /perfiles resources. It backs the end-to-end tests and can be run
// standalone for local development.
//
// It enforces the contract's server-side invariants, notably that the ADMIN
// perfil can never be deleted or renamed and that a username never changes
// after creation.
package mockapi

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

const tokenTTL = 24 * time.Hour

type usuarioRecord struct {
	domain.Usuario
	passwordHash []byte
}

// Server holds the in-memory dataset behind an echo router.
type Server struct {
	echo   *echo.Echo
	secret []byte
	log    zerolog.Logger

	mu            sync.Mutex
	usuarios      map[int64]*usuarioRecord
	perfiles      map[int64]*domain.Perfil
	nextUsuarioID int64
	nextPerfilID  int64
	clock         time.Time
}

// New builds a Server seeded with the ADMIN and USER perfiles and an
// admin/admin123 account holding the ADMIN perfil.
func New(secret string, log zerolog.Logger) *Server {
	s := &Server{
		secret:   []byte(secret),
		log:      log,
		usuarios: make(map[int64]*usuarioRecord),
		perfiles: make(map[int64]*domain.Perfil),
		clock:    time.Now().UTC().Add(-24 * time.Hour),
	}

	s.SeedPerfil(domain.PerfilAdmin, "Acceso completo al sistema")
	s.SeedPerfil("USER", "Acceso estándar")
	s.SeedUsuario("admin", "admin123", "admin@example.com", "Administrador", "Sistema", true, []string{domain.PerfilAdmin})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())

	api := e.Group("/api")
	api.POST("/auth/signin", s.signIn)

	usuarios := api.Group("/usuarios", s.requireAuth)
	usuarios.GET("", s.listUsuarios)
	usuarios.GET("/search", s.searchUsuarios)
	usuarios.GET("/perfil/:nombre", s.usuariosPorPerfil)
	usuarios.GET("/username/:username", s.usuarioPorUsername)
	usuarios.GET("/:id", s.usuarioPorID)
	usuarios.POST("", s.crearUsuario)
	usuarios.PUT("/:id", s.actualizarUsuario)
	usuarios.DELETE("/:id", s.eliminarUsuario)
	usuarios.PATCH("/:id/estado", s.cambiarEstado)
	usuarios.POST("/:usuarioId/perfiles/:perfilId", s.asignarPerfil)
	usuarios.DELETE("/:usuarioId/perfiles/:perfilId", s.removerPerfil)

	perfiles := api.Group("/perfiles", s.requireAuth)
	perfiles.GET("", s.listPerfiles)
	perfiles.GET("/search", s.searchPerfiles)
	perfiles.GET("/nombre/:nombre", s.perfilPorNombre)
	perfiles.GET("/:id", s.perfilPorID)
	perfiles.POST("", s.crearPerfil)
	perfiles.PUT("/:id", s.actualizarPerfil)
	perfiles.DELETE("/:id", s.eliminarPerfil)

	s.echo = e
	return s
}

// Handler exposes the router, for httptest servers.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves on addr until the process stops.
func (s *Server) Start(addr string) error { return s.echo.Start(addr) }

// SeedUsuario inserts an account directly, bypassing the HTTP surface.
func (s *Server) SeedUsuario(username, password, email, nombre, apellidos string, activo bool, perfiles []string) domain.Usuario {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUsuarioID++
	s.clock = s.clock.Add(time.Minute)
	rec := &usuarioRecord{
		Usuario: domain.Usuario{
			ID:            s.nextUsuarioID,
			Username:      username,
			Email:         email,
			Nombre:        nombre,
			Apellidos:     apellidos,
			Activo:        activo,
			Perfiles:      append([]string{}, perfiles...),
			FechaCreacion: s.clock,
		},
		passwordHash: hash,
	}
	s.usuarios[rec.ID] = rec
	return rec.Usuario
}

// SeedPerfil inserts a perfil directly.
func (s *Server) SeedPerfil(nombre, descripcion string) domain.Perfil {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPerfilID++
	s.clock = s.clock.Add(time.Minute)
	p := &domain.Perfil{
		ID:            s.nextPerfilID,
		Nombre:        nombre,
		Descripcion:   descripcion,
		FechaCreacion: s.clock,
	}
	s.perfiles[p.ID] = p
	return *p
}

// requireAuth validates the bearer token on every resource route.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header"})
		}
		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !tkn.Valid {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}
		return next(c)
	}
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token string `json:"token"`
	domain.Usuario
}

func (s *Server) signIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "petición inválida"})
	}

	s.mu.Lock()
	var rec *usuarioRecord
	for _, u := range s.usuarios {
		if u.Username == req.Username {
			rec = u
			break
		}
	}
	s.mu.Unlock()

	if rec == nil || bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Credenciales inválidas"})
	}

	token, err := s.issueToken(rec.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "no se pudo generar el token"})
	}
	return c.JSON(http.StatusOK, signInResponse{Token: token, Usuario: rec.Usuario})
}

func (s *Server) issueToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// paginate slices a sorted result set into the contract's page envelope.
func paginate[T any](items []T, page, size int) domain.Page[T] {
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	total := int64(len(items))
	start := page * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return domain.Page[T]{
		Content:       append([]T{}, items[start:end]...),
		TotalElements: total,
		Page:          page,
		Size:          size,
	}
}

func sortUsuarios(items []domain.Usuario) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].FechaCreacion.Equal(items[j].FechaCreacion) {
			return items[i].ID < items[j].ID
		}
		return items[i].FechaCreacion.Before(items[j].FechaCreacion)
	})
}

func sortPerfiles(items []domain.Perfil) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].FechaCreacion.Equal(items[j].FechaCreacion) {
			return items[i].ID < items[j].ID
		}
		return items[i].FechaCreacion.Before(items[j].FechaCreacion)
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
