package dto

// RegisterRequest entrada para registro (API JSON y formulario HTML).
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// SessionUser usuario con sesión iniciada (lo que se firma en la cookie).
type SessionUser struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// AuthResponse salida de login/registro en la API JSON.
type AuthResponse struct {
	Token   string      `json:"token"`
	User    SessionUser `json:"user"`
	Message string      `json:"message"`
}

// MessageResponse respuesta simple con el texto mostrado al usuario.
type MessageResponse struct {
	Message string `json:"message"`
}
