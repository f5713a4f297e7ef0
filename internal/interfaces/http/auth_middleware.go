package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agrilink-web/internal/application/dto"
	"github.com/jhoicas/agrilink-web/pkg/jwt"
)

// SessionCookieName cookie firmada con la identidad del usuario.
const SessionCookieName = "agrilink_session"

// LocalUser clave de c.Locals con el *dto.SessionUser actual.
const LocalUser = "session_user"

// SessionConfig firma y vida de la cookie de sesión.
type SessionConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
	Secure     bool
}

// SessionMiddleware es la notificación de cambio de sesión: en cada petición resuelve
// el usuario actual (cookie o Bearer) o su ausencia, y lo deja en c.Locals.
// Nunca bloquea; RequireUser decide qué rutas exigen sesión.
func SessionMiddleware(cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, fromCookie := c.Cookies(SessionCookieName), true
		if token == "" {
			token, fromCookie = bearerToken(c), false
		}
		if token == "" {
			return c.Next()
		}
		uid, email, err := jwt.Parse(cfg.Secret, token)
		if err != nil {
			if fromCookie {
				clearSessionCookie(c, cfg)
			}
			return c.Next()
		}
		c.Locals(LocalUser, &dto.SessionUser{UID: uid, Email: email})
		return c.Next()
	}
}

// RequireUser responde 401 si no hay sesión (usar después de SessionMiddleware).
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		return c.Next()
	}
}

// GetUser devuelve el usuario de la sesión o nil.
func GetUser(c *fiber.Ctx) *dto.SessionUser {
	u, _ := c.Locals(LocalUser).(*dto.SessionUser)
	return u
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func issueSessionToken(cfg SessionConfig, user *dto.SessionUser) (string, error) {
	return jwt.Generate(cfg.Secret, user.UID, user.Email, cfg.Issuer, cfg.ExpMinutes)
}

func setSessionCookie(c *fiber.Ctx, cfg SessionConfig, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(cfg.ExpMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx, cfg SessionConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
