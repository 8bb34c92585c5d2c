package mockapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

type perfilPayload struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

func (s *Server) snapshotPerfiles() []domain.Perfil {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Perfil, 0, len(s.perfiles))
	for _, p := range s.perfiles {
		out = append(out, *p)
	}
	sortPerfiles(out)
	return out
}

func (s *Server) listPerfiles(c echo.Context) error {
	page, size := pageParams(c)
	return c.JSON(http.StatusOK, paginate(s.snapshotPerfiles(), page, size))
}

func (s *Server) searchPerfiles(c echo.Context) error {
	page, size := pageParams(c)
	term := c.QueryParam("searchTerm")

	var matched []domain.Perfil
	for _, p := range s.snapshotPerfiles() {
		if containsFold(p.Nombre, term) || containsFold(p.Descripcion, term) {
			matched = append(matched, p)
		}
	}
	return c.JSON(http.StatusOK, paginate(matched, page, size))
}

func (s *Server) perfilPorID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id inválido"})
	}

	s.mu.Lock()
	p, ok := s.perfiles[id]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Perfil no encontrado"})
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) perfilPorNombre(c echo.Context) error {
	nombre := c.Param("nombre")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.perfiles {
		if p.Nombre == nombre {
			return c.JSON(http.StatusOK, p)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"message": "Perfil no encontrado"})
}

func (s *Server) crearPerfil(c echo.Context) error {
	var req perfilPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "petición inválida"})
	}

	s.mu.Lock()
	for _, p := range s.perfiles {
		if p.Nombre == req.Nombre {
			s.mu.Unlock()
			return c.JSON(http.StatusConflict, echo.Map{"message": "El perfil ya existe: " + req.Nombre})
		}
	}
	s.mu.Unlock()

	created := s.SeedPerfil(req.Nombre, req.Descripcion)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) actualizarPerfil(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id inválido"})
	}
	var req perfilPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "petición inválida"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.perfiles[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Perfil no encontrado"})
	}
	// The ADMIN perfil's name is immutable, authoritatively.
	if p.Nombre == domain.PerfilAdmin && req.Nombre != domain.PerfilAdmin {
		return c.JSON(http.StatusConflict, echo.Map{"message": "El perfil ADMIN no puede modificarse"})
	}
	for _, other := range s.perfiles {
		if other.ID != id && other.Nombre == req.Nombre {
			return c.JSON(http.StatusConflict, echo.Map{"message": "El perfil ya existe: " + req.Nombre})
		}
	}

	// Membership is name-keyed on the usuario, so a rename cascades.
	if p.Nombre != req.Nombre {
		for _, rec := range s.usuarios {
			for i, nombre := range rec.Perfiles {
				if nombre == p.Nombre {
					rec.Perfiles[i] = req.Nombre
				}
			}
		}
	}

	p.Nombre = req.Nombre
	p.Descripcion = req.Descripcion
	return c.JSON(http.StatusOK, p)
}

func (s *Server) eliminarPerfil(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id inválido"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.perfiles[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Perfil no encontrado"})
	}
	// The ADMIN perfil can never be deleted, authoritatively.
	if p.Nombre == domain.PerfilAdmin {
		return c.JSON(http.StatusConflict, echo.Map{"message": "El perfil ADMIN no puede eliminarse"})
	}

	for _, rec := range s.usuarios {
		kept := rec.Perfiles[:0]
		for _, nombre := range rec.Perfiles {
			if nombre != p.Nombre {
				kept = append(kept, nombre)
			}
		}
		rec.Perfiles = kept
	}
	delete(s.perfiles, id)
	return c.NoContent(http.StatusNoContent)
}
