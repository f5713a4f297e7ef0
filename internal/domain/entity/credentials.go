package entity

import "strings"

// FormMode distingue qué campos exige el formulario.
type FormMode int

const (
	FormLogin FormMode = iota
	FormSignUp
)

// CredentialForm estado del formulario mientras el usuario lo edita.
type CredentialForm struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// MissingFields devuelve los campos obligatorios vacíos (solo espacios cuenta como vacío).
func (f CredentialForm) MissingFields(mode FormMode) []string {
	var missing []string
	if mode == FormSignUp && strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if f.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}

// Sanitized quita la contraseña antes de conservar el formulario entre peticiones.
func (f CredentialForm) Sanitized() CredentialForm {
	f.Password = ""
	return f
}

// Normalized recorta espacios de nombre y email. La contraseña no se toca.
func (f CredentialForm) Normalized() CredentialForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return f
}
