package entity

// Screen identifica la pantalla seleccionada en la sesión del navegador.
type Screen string

// Pantallas válidas. No existe un quinto estado.
const (
	ScreenLanding   Screen = "landing"
	ScreenLogin     Screen = "login"
	ScreenSignUp    Screen = "signup"
	ScreenDashboard Screen = "dashboard"
)

// Screens lista las pantallas en orden de navegación.
var Screens = []Screen{ScreenLanding, ScreenLogin, ScreenSignUp, ScreenDashboard}

// ParseScreen resuelve un nombre de pantalla; cualquier valor desconocido cae en landing.
func ParseScreen(s string) Screen {
	switch Screen(s) {
	case ScreenLanding, ScreenLogin, ScreenSignUp, ScreenDashboard:
		return Screen(s)
	default:
		return ScreenLanding
	}
}

// RequiresUser indica si la pantalla solo tiene sentido con sesión iniciada.
func (s Screen) RequiresUser() bool {
	return s == ScreenDashboard
}
