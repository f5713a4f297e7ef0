package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agrilink-web/internal/application/auth"
	"github.com/jhoicas/agrilink-web/internal/application/dto"
	"github.com/jhoicas/agrilink-web/internal/domain"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

// AuthHandler API JSON de registro, login y logout (mismo caso de uso que los formularios).
type AuthHandler struct {
	uc      *auth.AuthUseCase
	session SessionConfig
	log     *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, session SessionConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, session: session, log: log}
}

// Register godoc
// @Summary      Registrar usuario y escribir su perfil
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password, role"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.SignUp(c.UserContext(), entity.CredentialForm{
		Name: in.Name, Email: in.Email, Password: in.Password, Role: in.Role,
	})
	if err != nil {
		return h.fail(c, auth.ActionSignUp, err)
	}
	return h.respondWithToken(c, fiber.StatusCreated, user, auth.SuccessMessage(auth.ActionSignUp))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.Login(c.UserContext(), entity.CredentialForm{Email: in.Email, Password: in.Password})
	if err != nil {
		return h.fail(c, auth.ActionLogin, err)
	}
	return h.respondWithToken(c, fiber.StatusOK, user, auth.SuccessMessage(auth.ActionLogin))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := GetUser(c)
	clearSessionCookie(c, h.session)
	if err := h.uc.Logout(c.UserContext(), user.UID); err != nil {
		return h.fail(c, auth.ActionLogout, err)
	}
	return c.JSON(dto.MessageResponse{Message: auth.SuccessMessage(auth.ActionLogout)})
}

// Me godoc
// @Summary      Usuario de la sesión actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.SessionUser
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(GetUser(c))
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, status int, user *dto.SessionUser, msg string) error {
	token, err := issueSessionToken(h.session, user)
	if err != nil {
		h.log.Error().Err(err).Msg("firmar token de sesión")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo iniciar la sesión"})
	}
	return c.Status(status).JSON(dto.AuthResponse{Token: token, User: *user, Message: msg})
}

func (h *AuthHandler) fail(c *fiber.Ctx, action auth.Action, err error) error {
	status, code := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("code", code).Msg("api auth")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: auth.MessageFor(action, err)})
}

// statusFor traduce errores de dominio a estado HTTP y código de error.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrInvalidEmail):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrEmailAlreadyInUse):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrInvalidCredential), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrUserDisabled):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrTooManyRequests):
		return fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS"
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrProfileWrite):
		return fiber.StatusBadGateway, "BAD_GATEWAY"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}
