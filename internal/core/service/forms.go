package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

// Forms evaluates the field-level form policy before any network call.
// Violations come back as *domain.ValidationError with one message per
// field, for inline display.
type Forms struct {
	v *validator.Validate
}

func NewForms() *Forms {
	return &Forms{v: validator.New()}
}

// ValidateUsuario checks the usuario dialog. Username and password are
// required on create only; on edit the username field is disabled and the
// password is only validated when being reset.
func (f *Forms) ValidateUsuario(form domain.UsuarioForm, isNew bool) error {
	fields := f.structFields(form)
	if isNew {
		if strings.TrimSpace(form.Username) == "" {
			fields["username"] = "el nombre de usuario es obligatorio"
		}
		if form.Password == "" {
			fields["password"] = "la contraseña es obligatoria"
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ValidatePerfil checks the perfil dialog.
func (f *Forms) ValidatePerfil(form domain.PerfilForm) error {
	fields := f.structFields(form)
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (f *Forms) structFields(s any) map[string]string {
	fields := make(map[string]string)
	err := f.v.Struct(s)
	if err == nil {
		return fields
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range ve {
		fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return fields
}

// fieldMessage converts a single rule violation into the inline message
// shown next to the field.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "este campo es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("no puede exceder %s caracteres", fe.Param())
	default:
		return fmt.Sprintf("valor inválido (%s)", fe.Tag())
	}
}
