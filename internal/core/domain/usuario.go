package domain

import "time"

// Usuario is an account record as served by the backend. Profile membership
// is carried as perfil names, which is how the backend renders the
// relationship on the wire; the add/remove edges in the API are id-keyed.
type Usuario struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Nombre        string    `json:"nombre"`
	Apellidos     string    `json:"apellidos"`
	Activo        bool      `json:"activo"`
	Perfiles      []string  `json:"perfiles"`
	FechaCreacion time.Time `json:"fechaCreacion"`
}

// NombreCompleto returns the display name used in tables and confirmations.
func (u Usuario) NombreCompleto() string {
	if u.Apellidos == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellidos
}

// TienePerfil reports whether the usuario holds the named perfil.
func (u Usuario) TienePerfil(nombre string) bool {
	for _, p := range u.Perfiles {
		if p == nombre {
			return true
		}
	}
	return false
}
