package domain

import "time"

// PerfilAdmin is the protected perfil. It can never be deleted and its name
// can never change. The console refuses these actions before any request is
// made, and the backend rejects them as well; the client check is a UX
// convenience, not the security boundary.
const PerfilAdmin = "ADMIN"

// Perfil is a named role grouping, assignable to usuarios many-to-many.
type Perfil struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion"`
	FechaCreacion time.Time `json:"fechaCreacion"`
}

// Protegido reports whether this perfil is immutable.
func (p Perfil) Protegido() bool {
	return p.Nombre == PerfilAdmin
}
