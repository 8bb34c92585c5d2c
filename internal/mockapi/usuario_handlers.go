package mockapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

type usuarioPayload struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Email     string   `json:"email"`
	Nombre    string   `json:"nombre"`
	Apellidos string   `json:"apellidos"`
	Activo    bool     `json:"activo"`
	Perfiles  []string `json:"perfiles"`
}

func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, _ = strconv.Atoi(c.QueryParam("size"))
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	return page, size
}

func (s *Server) snapshotUsuarios() []domain.Usuario {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Usuario, 0, len(s.usuarios))
	for _, rec := range s.usuarios {
		out = append(out, rec.Usuario)
	}
	sortUsuarios(out)
	return out
}

func (s *Server) listUsuarios(c echo.Context) error {
	page, size := pageParams(c)
	return c.JSON(http.StatusOK, paginate(s.snapshotUsuarios(), page, size))
}

func (s *Server) searchUsuarios(c echo.Context) error {
	page, size := pageParams(c)
	term := c.QueryParam("searchTerm")

	var matched []domain.Usuario
	for _, u := range s.snapshotUsuarios() {
		if containsFold(u.Username, term) || containsFold(u.Email, term) ||
			containsFold(u.Nombre, term) || containsFold(u.Apellidos, term) {
			matched = append(matched, u)
		}
	}
	return c.JSON(http.StatusOK, paginate(matched, page, size))
}

func (s *Server) usuariosPorPerfil(c echo.Context) error {
	page, size := pageParams(c)
	nombre := c.Param("nombre")

	var matched []domain.Usuario
	for _, u := range s.snapshotUsuarios() {
		if u.TienePerfil(nombre) {
			matched = append(matched, u)
		}
	}
	return c.JSON(http.StatusOK, paginate(matched, page, size))
}

func (s *Server) usuarioPorID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id inválido"})
	}

	s.mu.Lock()
	rec, ok := s.usuarios[id]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
	}
	return c.JSON(http.StatusOK, rec.Usuario)
}

func (s *Server) usuarioPorUsername(c echo.Context) error {
	username := c.Param("username")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.usuarios {
		if rec.Username == username {
			return c.JSON(http.StatusOK, rec.Usuario)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
}

func (s *Server) crearUsuario(c echo.Context) error {
	var req usuarioPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "petición inválida"})
	}

	s.mu.Lock()
	for _, rec := range s.usuarios {
		if rec.Username == req.Username {
			s.mu.Unlock()
			return c.JSON(http.StatusConflict, echo.Map{"message": "El usuario ya existe: " + req.Username})
		}
		if rec.Email == req.Email {
			s.mu.Unlock()
			return c.JSON(http.StatusConflict, echo.Map{"message": "El email ya está registrado: " + req.Email})
		}
	}
	s.mu.Unlock()

	created := s.SeedUsuario(req.Username, req.Password, req.Email, req.Nombre, req.Apellidos, req.Activo, req.Perfiles)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) actualizarUsuario(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id inválido"})
	}
	var req usuarioPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "petición inválida"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.usuarios[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
	}
	// Username is immutable after creation, also on the server side.
	if req.Username != "" && req.Username != rec.Username {
		return c.JSON(http.StatusConflict, echo.Map{"message": "El nombre de usuario no puede modificarse"})
	}
	for _, other := range s.usuarios {
		if other.ID != id && other.Email == req.Email {
			return c.JSON(http.StatusConflict, echo.Map{"message": "El email ya está registrado: " + req.Email})
		}
	}

	rec.Email = req.Email
	rec.Nombre = req.Nombre
	rec.Apellidos = req.Apellidos
	rec.Activo = req.Activo
	if req.Perfiles != nil {
		rec.Perfiles = append([]string{}, req.Perfiles...)
	}
	return c.JSON(http.StatusOK, rec.Usuario)
}

func (s *Server) eliminarUsuario(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id inválido"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usuarios[id]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
	}
	delete(s.usuarios, id)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) cambiarEstado(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id inválido"})
	}
	activo, err := strconv.ParseBool(c.QueryParam("activo"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "parámetro activo inválido"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.usuarios[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
	}
	rec.Activo = activo
	return c.JSON(http.StatusOK, rec.Usuario)
}

func (s *Server) asignarPerfil(c echo.Context) error {
	usuarioID, err1 := strconv.ParseInt(c.Param("usuarioId"), 10, 64)
	perfilID, err2 := strconv.ParseInt(c.Param("perfilId"), 10, 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id inválido"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.usuarios[usuarioID]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
	}
	perfil, ok := s.perfiles[perfilID]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Perfil no encontrado"})
	}
	if !rec.TienePerfil(perfil.Nombre) {
		rec.Perfiles = append(rec.Perfiles, perfil.Nombre)
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) removerPerfil(c echo.Context) error {
	usuarioID, err1 := strconv.ParseInt(c.Param("usuarioId"), 10, 64)
	perfilID, err2 := strconv.ParseInt(c.Param("perfilId"), 10, 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id inválido"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.usuarios[usuarioID]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
	}
	perfil, ok := s.perfiles[perfilID]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Perfil no encontrado"})
	}
	kept := rec.Perfiles[:0]
	for _, nombre := range rec.Perfiles {
		if nombre != perfil.Nombre {
			kept = append(kept, nombre)
		}
	}
	rec.Perfiles = kept
	return c.NoContent(http.StatusOK)
}
