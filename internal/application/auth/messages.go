package auth

import (
	"errors"

	"github.com/jhoicas/agrilink-web/internal/domain"
)

// Action indica qué envío produjo el mensaje.
type Action int

const (
	ActionLogin Action = iota
	ActionSignUp
	ActionLogout
)

// Textos mostrados al usuario.
const (
	MsgValidation    = "Please fill in all required fields."
	MsgInvalidRole   = "Please choose a valid role."
	MsgInFlight      = "Your request is already being processed."
	MsgLoginOK       = "Login successful!"
	MsgSignUpOK      = "Account created successfully!"
	MsgLogoutOK      = "You have been signed out."
	MsgLoginFailed   = "Login failed. Check email and password."
	MsgTooMany       = "Too many attempts. Please try again later."
	MsgDisabled      = "This account has been disabled."
	MsgNetwork       = "Network error. Please check your connection and try again."
	MsgLogoutFailed  = "Sign out failed. Please try again."
	signUpFailPrefix = "Sign up failed: "
)

// SuccessMessage texto de éxito para la acción.
func SuccessMessage(a Action) string {
	switch a {
	case ActionSignUp:
		return MsgSignUpOK
	case ActionLogout:
		return MsgLogoutOK
	default:
		return MsgLoginOK
	}
}

// MessageFor traduce un error del envío a un texto legible. Nunca devuelve cadena vacía.
func MessageFor(a Action, err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return MsgValidation
	case errors.Is(err, domain.ErrInvalidRole):
		return MsgInvalidRole
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return MsgInFlight
	}

	switch a {
	case ActionSignUp:
		return signUpMessage(err)
	case ActionLogout:
		return MsgLogoutFailed
	}

	switch {
	case errors.Is(err, domain.ErrTooManyRequests):
		return MsgTooMany
	case errors.Is(err, domain.ErrUserDisabled):
		return MsgDisabled
	case errors.Is(err, domain.ErrNetwork):
		return MsgNetwork
	default:
		return MsgLoginFailed
	}
}

func signUpMessage(err error) string {
	for _, known := range []error{
		domain.ErrEmailAlreadyInUse,
		domain.ErrWeakPassword,
		domain.ErrInvalidEmail,
		domain.ErrProfileWrite,
		domain.ErrTooManyRequests,
		domain.ErrNetwork,
	} {
		if errors.Is(err, known) {
			return signUpFailPrefix + known.Error()
		}
	}
	var idErr *domain.IdentityError
	if errors.As(err, &idErr) && idErr.Message != "" {
		return signUpFailPrefix + idErr.Message
	}
	if err == nil {
		return signUpFailPrefix + "unknown error"
	}
	return signUpFailPrefix + err.Error()
}
