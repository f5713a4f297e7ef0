package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation         = errors.New("faltan campos obligatorios")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredential  = errors.New("invalid credential")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrTooManyRequests    = errors.New("too many attempts")
	ErrUserDisabled       = errors.New("user disabled")
	ErrNetwork            = errors.New("network request failed")
	ErrProfileWrite       = errors.New("could not save your profile")
	ErrSubmissionInFlight = errors.New("ya hay un envío en curso")
	ErrUnauthorized       = errors.New("no autorizado")
)

// IdentityError conserva el código crudo del proveedor de identidad y
// se resuelve al sentinel correspondiente con errors.Is.
type IdentityError struct {
	Code    string // p. ej. EMAIL_EXISTS, auth/invalid-credential
	Message string
	Err     error
}

func (e *IdentityError) Error() string {
	if e.Err == nil {
		return "identity: " + e.Code
	}
	return "identity: " + e.Code + ": " + e.Err.Error()
}

func (e *IdentityError) Unwrap() error { return e.Err }
