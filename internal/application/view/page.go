package view

import (
	"github.com/jhoicas/agrilink-web/internal/application/dto"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
)

// Page datos que recibe la plantilla de una pantalla.
type Page struct {
	Template        string
	Screen          entity.Screen
	Title           string
	Form            entity.CredentialForm
	Notice          *entity.Notification
	NoticeTTLMillis int64
	User            *dto.SessionUser
	Roles           []RoleOption
	Year            int
}

// RoleOption botón de rol en el formulario de registro.
type RoleOption struct {
	Value    string
	Label    string
	Selected bool
}

var titles = map[entity.Screen]string{
	entity.ScreenLanding:   "AgriLink",
	entity.ScreenLogin:     "Sign In",
	entity.ScreenSignUp:    "Create Account",
	entity.ScreenDashboard: "Dashboard",
}

func roleOptions(current string) []RoleOption {
	selected, err := entity.ParseRole(current)
	if err != nil {
		selected = entity.DefaultRole
	}
	opts := make([]RoleOption, 0, len(entity.Roles))
	for _, r := range entity.Roles {
		opts = append(opts, RoleOption{Value: string(r), Label: r.Label(), Selected: r == selected})
	}
	return opts
}
