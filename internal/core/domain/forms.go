package domain

// UsuarioForm carries the editable fields of the usuario dialog. Username and
// Password are only required (and only sent) when creating; in edit mode the
// username field is disabled and never submitted with a new value.
type UsuarioForm struct {
	Username  string   `json:"username"  validate:"omitempty,min=3,max=50"`
	Password  string   `json:"password"  validate:"omitempty,min=6,max=100"`
	Email     string   `json:"email"     validate:"required,email"`
	Nombre    string   `json:"nombre"    validate:"required,min=3,max=255"`
	Apellidos string   `json:"apellidos" validate:"required,min=3,max=255"`
	Activo    bool     `json:"activo"`
	Perfiles  []string `json:"perfiles"`
}

// FormDesdeUsuario pre-populates the edit dialog with the entity's current
// values. Password stays empty: it is never round-tripped.
func FormDesdeUsuario(u Usuario) UsuarioForm {
	return UsuarioForm{
		Username:  u.Username,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Apellidos: u.Apellidos,
		Activo:    u.Activo,
		Perfiles:  append([]string(nil), u.Perfiles...),
	}
}

// NuevoUsuarioForm returns the create dialog defaults.
func NuevoUsuarioForm() UsuarioForm {
	return UsuarioForm{Activo: true, Perfiles: []string{}}
}

// PerfilForm carries the editable fields of the perfil dialog.
type PerfilForm struct {
	Nombre      string `json:"nombre"      validate:"required,min=3,max=50"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=255"`
}

// FormDesdePerfil pre-populates the edit dialog.
func FormDesdePerfil(p Perfil) PerfilForm {
	return PerfilForm{Nombre: p.Nombre, Descripcion: p.Descripcion}
}
