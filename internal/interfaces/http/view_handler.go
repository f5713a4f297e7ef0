package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/agrilink-web/internal/application/dto"
	"github.com/jhoicas/agrilink-web/internal/application/view"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

// LayoutMain plantilla que envuelve todas las pantallas.
const LayoutMain = "layouts/main"

// ViewHandler pantallas HTML: renderiza la pantalla seleccionada y procesa los formularios.
// Cada POST termina en redirect a "/" (PRG) con el estado guardado en la sesión de vista.
type ViewHandler struct {
	ctrl    *view.Controller
	views   *session.Store
	sessCfg SessionConfig
	log     *logger.Logger
}

// NewViewHandler construye el handler de pantallas.
func NewViewHandler(ctrl *view.Controller, views *session.Store, sessCfg SessionConfig, log *logger.Logger) *ViewHandler {
	return &ViewHandler{ctrl: ctrl, views: views, sessCfg: sessCfg, log: log}
}

// Home renderiza la pantalla actual. GET /
func (h *ViewHandler) Home(c *fiber.Ctx) error {
	sess, err := h.views.Get(c)
	if err != nil {
		return h.internal(c, err)
	}
	st := loadState(sess)
	page := h.ctrl.Render(&st, GetUser(c))
	if err := saveState(sess, st); err != nil {
		return h.internal(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Render(page.Template, page, LayoutMain)
}

// Navigate cambia de pantalla. GET /view/:screen
func (h *ViewHandler) Navigate(c *fiber.Ctx) error {
	return h.withState(c, func(sess *session.Session, st *view.State) {
		h.ctrl.Navigate(st, c.Params("screen"), GetUser(c))
	})
}

// SubmitLogin procesa el formulario de login. POST /login
func (h *ViewHandler) SubmitLogin(c *fiber.Ctx) error {
	var in dto.LoginRequest
	h.parseForm(c, &in)
	return h.withState(c, func(sess *session.Session, st *view.State) {
		user, err := h.ctrl.SubmitLogin(c.UserContext(), sess.ID(), st, entity.CredentialForm{
			Email: in.Email, Password: in.Password,
		})
		if err == nil {
			h.startSession(c, st, user)
		}
	})
}

// SubmitSignUp procesa el formulario de registro. POST /signup
func (h *ViewHandler) SubmitSignUp(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	h.parseForm(c, &in)
	return h.withState(c, func(sess *session.Session, st *view.State) {
		user, err := h.ctrl.SubmitSignUp(c.UserContext(), sess.ID(), st, entity.CredentialForm{
			Name: in.Name, Email: in.Email, Password: in.Password, Role: in.Role,
		})
		if err == nil {
			h.startSession(c, st, user)
		}
	})
}

// Logout cierra la sesión. POST /logout
func (h *ViewHandler) Logout(c *fiber.Ctx) error {
	return h.withState(c, func(sess *session.Session, st *view.State) {
		_ = h.ctrl.Logout(c.UserContext(), st, GetUser(c))
		clearSessionCookie(c, h.sessCfg)
	})
}

// parseForm lee el formulario. Un cuerpo ilegible deja los campos vacíos y termina en el aviso de validación.
func (h *ViewHandler) parseForm(c *fiber.Ctx, out any) {
	if err := c.BodyParser(out); err != nil {
		h.log.Debug().Err(err).Str("path", c.Path()).Str("content_type", c.Get(fiber.HeaderContentType)).Msg("formulario ilegible")
	}
}

func (h *ViewHandler) withState(c *fiber.Ctx, fn func(sess *session.Session, st *view.State)) error {
	sess, err := h.views.Get(c)
	if err != nil {
		return h.internal(c, err)
	}
	st := loadState(sess)
	fn(sess, &st)
	if err := saveState(sess, st); err != nil {
		return h.internal(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *ViewHandler) startSession(c *fiber.Ctx, st *view.State, user *dto.SessionUser) {
	token, err := issueSessionToken(h.sessCfg, user)
	if err != nil {
		// Sin cookie la pantalla dashboard cae a login en el siguiente render.
		h.log.Error().Err(err).Str("uid", user.UID).Msg("firmar token de sesión")
		return
	}
	setSessionCookie(c, h.sessCfg, token)
}

func (h *ViewHandler) internal(c *fiber.Ctx, err error) error {
	h.log.Error().Err(err).Str("path", c.Path()).Msg("sesión de vista")
	return c.Status(fiber.StatusInternalServerError).SendString("internal error")
}
