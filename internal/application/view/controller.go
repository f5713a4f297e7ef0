package view

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/agrilink-web/internal/application/auth"
	"github.com/jhoicas/agrilink-web/internal/application/dto"
	"github.com/jhoicas/agrilink-web/internal/application/notify"
	"github.com/jhoicas/agrilink-web/internal/domain"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

// Authenticator es el contrato mínimo que necesita el controlador.
// Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	SignUp(ctx context.Context, form entity.CredentialForm) (*dto.SessionUser, error)
	Login(ctx context.Context, form entity.CredentialForm) (*dto.SessionUser, error)
	Logout(ctx context.Context, uid string) error
}

// State estado de vista de una sesión del navegador: pantalla, formulario en edición y aviso.
type State struct {
	Screen entity.Screen
	Form   entity.CredentialForm
	Notice *entity.Notification
}

// Controller decide qué pantalla se muestra y reenvía los formularios al caso de uso de auth.
type Controller struct {
	auth  Authenticator
	relay *notify.Relay
	log   *logger.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewController construye el controlador de vistas.
func NewController(a Authenticator, relay *notify.Relay, log *logger.Logger) *Controller {
	return &Controller{
		auth:     a,
		relay:    relay,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

// Navigate reemplaza la pantalla seleccionada. El formulario se limpia al cambiar de pantalla.
// dashboard sin sesión lleva a login.
func (c *Controller) Navigate(st *State, target string, user *dto.SessionUser) {
	next := entity.ParseScreen(target)
	if next.RequiresUser() && user == nil {
		next = entity.ScreenLogin
	}
	if next != st.Screen {
		st.Form = entity.CredentialForm{}
	}
	st.Screen = next
}

// Render produce exactamente una página para la pantalla actual.
// Normaliza el estado: pantalla desconocida -> landing, aviso vencido -> nil.
func (c *Controller) Render(st *State, user *dto.SessionUser) Page {
	screen := entity.ParseScreen(string(st.Screen))
	if screen.RequiresUser() && user == nil {
		screen = entity.ScreenLogin
	}
	st.Screen = screen
	st.Notice = c.relay.Visible(st.Notice)

	p := Page{
		Template: string(screen),
		Screen:   screen,
		Title:    titles[screen],
		Form:     st.Form.Sanitized(),
		Notice:   st.Notice,
		User:     user,
		Year:     c.relay.Now().Year(),
	}
	if st.Notice != nil {
		p.NoticeTTLMillis = st.Notice.Remaining(c.relay.Now()).Milliseconds()
	}
	if screen == entity.ScreenSignUp {
		p.Roles = roleOptions(st.Form.Role)
	}
	return p
}

// SubmitLogin envía el formulario de login. En éxito pasa a dashboard.
func (c *Controller) SubmitLogin(ctx context.Context, sessionID string, st *State, form entity.CredentialForm) (*dto.SessionUser, error) {
	return c.submit(ctx, sessionID, st, form, auth.ActionLogin, c.auth.Login)
}

// SubmitSignUp envía el formulario de registro. En éxito pasa a dashboard.
func (c *Controller) SubmitSignUp(ctx context.Context, sessionID string, st *State, form entity.CredentialForm) (*dto.SessionUser, error) {
	return c.submit(ctx, sessionID, st, form, auth.ActionSignUp, c.auth.SignUp)
}

// Logout cierra la sesión y vuelve a landing. La capa HTTP borra la cookie.
func (c *Controller) Logout(ctx context.Context, st *State, user *dto.SessionUser) error {
	st.Screen = entity.ScreenLanding
	st.Form = entity.CredentialForm{}
	if user == nil {
		return nil
	}
	if err := c.auth.Logout(ctx, user.UID); err != nil {
		c.log.Warn().Err(err).Str("uid", user.UID).Msg("cierre de sesión en el proveedor")
		st.Notice = c.relay.Error(auth.MessageFor(auth.ActionLogout, err))
		return err
	}
	st.Notice = c.relay.Success(auth.SuccessMessage(auth.ActionLogout))
	return nil
}

func (c *Controller) submit(
	ctx context.Context,
	sessionID string,
	st *State,
	form entity.CredentialForm,
	action auth.Action,
	call func(context.Context, entity.CredentialForm) (*dto.SessionUser, error),
) (*dto.SessionUser, error) {
	release, err := c.acquire(sessionID)
	if err != nil {
		st.Notice = c.relay.Error(auth.MessageFor(action, err))
		return nil, err
	}
	defer release()

	user, err := call(ctx, form)
	if err != nil {
		c.logFailure(action, err)
		st.Form = form.Sanitized()
		st.Notice = c.relay.Error(auth.MessageFor(action, err))
		return nil, err
	}

	st.Screen = entity.ScreenDashboard
	st.Form = entity.CredentialForm{}
	st.Notice = c.relay.Success(auth.SuccessMessage(action))
	c.log.Info().Str("uid", user.UID).Str("action", actionName(action)).Msg("envío de credenciales exitoso")
	return user, nil
}

// acquire impide un segundo envío de la misma sesión mientras el primero sigue en curso.
func (c *Controller) acquire(sessionID string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[sessionID]; busy {
		return nil, domain.ErrSubmissionInFlight
	}
	c.inflight[sessionID] = struct{}{}
	return func() {
		c.mu.Lock()
		delete(c.inflight, sessionID)
		c.mu.Unlock()
	}, nil
}

func (c *Controller) logFailure(action auth.Action, err error) {
	ev := c.log.Warn().Err(err).Str("action", actionName(action))
	var idErr *domain.IdentityError
	if errors.As(err, &idErr) {
		ev = ev.Str("provider_code", idErr.Code)
	}
	ev.Msg("envío de credenciales rechazado")
}

func actionName(a auth.Action) string {
	switch a {
	case auth.ActionSignUp:
		return "signup"
	case auth.ActionLogout:
		return "logout"
	default:
		return "login"
	}
}
