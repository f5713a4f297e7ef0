package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrilink-web/internal/application/auth"
	"github.com/jhoicas/agrilink-web/internal/application/dto"
	"github.com/jhoicas/agrilink-web/internal/application/notify"
	"github.com/jhoicas/agrilink-web/internal/application/view"
	"github.com/jhoicas/agrilink-web/internal/domain"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
	apphttp "github.com/jhoicas/agrilink-web/internal/interfaces/http"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "test-secret-key-for-unit-tests"

type fakeIdentity struct {
	calls     []string
	createErr error
	signInErr error
}

func (f *fakeIdentity) CreateAccount(_ context.Context, email, _ string) (*entity.UserHandle, error) {
	f.calls = append(f.calls, "create-account")
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &entity.UserHandle{UID: "uid-new", Email: email, IDToken: "tok"}, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, email, _ string) (*entity.UserHandle, error) {
	f.calls = append(f.calls, "sign-in")
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &entity.UserHandle{UID: "uid-1", Email: email}, nil
}

func (f *fakeIdentity) SignOut(context.Context, string) error {
	f.calls = append(f.calls, "sign-out")
	return nil
}

type fakeStore struct {
	id   *fakeIdentity
	path string
}

func (f *fakeStore) WriteRecord(_ context.Context, path string, _ map[string]any) error {
	f.id.calls = append(f.id.calls, "write-record")
	f.path = path
	return nil
}

// client conserva las cookies entre peticiones como lo haría el navegador.
type client struct {
	t   *testing.T
	app *fiber.App
	jar *cookiejar.Jar
}

var baseURL, _ = url.Parse("http://example.com/")

func newTestApp(t *testing.T) (*client, *fakeIdentity, *fakeStore) {
	t.Helper()
	return newTestAppWithLogger(t, logger.Nop())
}

func newTestAppWithLogger(t *testing.T, log *logger.Logger) (*client, *fakeIdentity, *fakeStore) {
	t.Helper()
	id := &fakeIdentity{}
	store := &fakeStore{id: id}

	uc := auth.NewAuthUseCase(id, store, auth.Config{ProfileCollection: "users"})
	ctrl := view.NewController(uc, notify.NewRelay(3*time.Second), log)

	engine, err := apphttp.NewViewEngine()
	require.NoError(t, err)
	app := fiber.New(fiber.Config{Views: engine})
	apphttp.Router(app, apphttp.RouterDeps{
		AppName: "agrilink-test",
		AuthUC:  uc,
		View:    ctrl,
		Views:   apphttp.NewViewStore(false),
		Session: apphttp.SessionConfig{Secret: testSecret, Issuer: "agrilink-test", ExpMinutes: 60},
		Log:     log,
	})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, app: app, jar: jar}, id, store
}

func (c *client) do(req *http.Request) *http.Response {
	c.t.Helper()
	for _, ck := range c.jar.Cookies(baseURL) {
		req.AddCookie(ck)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	c.jar.SetCookies(baseURL, resp.Cookies())
	return resp
}

func (c *client) get(path string) (*http.Response, string) {
	resp := c.do(httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *client) postForm(path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return c.do(req)
}

func (c *client) hasCookie(name string) bool {
	for _, ck := range c.jar.Cookies(baseURL) {
		if ck.Name == name && ck.Value != "" {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// Pantallas
// ──────────────────────────────────────────────────────────────────────────────

func TestHome_MuestraLanding(t *testing.T) {
	c, _, _ := newTestApp(t)

	resp, body := c.get("/")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Connecting Farmers &amp; Aggregators")
	assert.Contains(t, body, "For Farmers")
	assert.Contains(t, body, "For Aggregators")
	assert.Contains(t, body, "For Admins")
	assert.Contains(t, body, "AgriLink. Empowering agriculture for a better tomorrow.")
}

func TestNavigate_CambiaPantalla(t *testing.T) {
	c, _, _ := newTestApp(t)

	resp := c.do(httptest.NewRequest(http.MethodGet, "/view/signup", nil))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	_, body := c.get("/")
	assert.Contains(t, body, `action="/signup"`)
	assert.Contains(t, body, `value="farmer" checked`)
}

func TestNavigate_DashboardSinSesionMuestraLogin(t *testing.T) {
	c, _, _ := newTestApp(t)

	c.do(httptest.NewRequest(http.MethodGet, "/view/dashboard", nil))
	_, body := c.get("/")
	assert.Contains(t, body, `action="/login"`)
	assert.NotContains(t, body, "Signed in as")
}

func TestSubmitLogin_ExitosoMuestraDashboard(t *testing.T) {
	c, id, _ := newTestApp(t)

	c.do(httptest.NewRequest(http.MethodGet, "/view/login", nil))
	resp := c.postForm("/login", url.Values{"email": {"a@b.com"}, "password": {"pw123456"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.True(t, c.hasCookie(apphttp.SessionCookieName))

	_, body := c.get("/")
	assert.Contains(t, body, "Signed in as <strong>a@b.com</strong>")
	assert.Contains(t, body, html.EscapeString(auth.MsgLoginOK))
	assert.Equal(t, []string{"sign-in"}, id.calls)
}

func TestSubmitLogin_CampoVacioNoLlamaIdentidad(t *testing.T) {
	c, id, _ := newTestApp(t)

	c.do(httptest.NewRequest(http.MethodGet, "/view/login", nil))
	c.postForm("/login", url.Values{"email": {"a@b.com"}})

	_, body := c.get("/")
	assert.Contains(t, body, auth.MsgValidation)
	assert.Contains(t, body, `value="a@b.com"`, "el email se conserva")
	assert.Empty(t, id.calls)
	assert.False(t, c.hasCookie(apphttp.SessionCookieName))
}

func TestSubmitLogin_CuerpoIlegibleSeRegistraYValida(t *testing.T) {
	var buf bytes.Buffer
	c, id, _ := newTestAppWithLogger(t, logger.New(logger.Config{Env: "test", Level: "debug", Output: &buf}))

	c.do(httptest.NewRequest(http.MethodGet, "/view/login", nil))
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp := c.do(req)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	assert.Contains(t, buf.String(), "formulario ilegible")
	assert.Contains(t, buf.String(), `"path":"/login"`)
	assert.Empty(t, id.calls)

	_, body := c.get("/")
	assert.Contains(t, body, auth.MsgValidation)
}

func TestSubmitSignUp_CreaCuentaLuegoPerfil(t *testing.T) {
	c, id, store := newTestApp(t)

	c.do(httptest.NewRequest(http.MethodGet, "/view/signup", nil))
	c.postForm("/signup", url.Values{
		"name": {"Ada"}, "email": {"ada@farm.io"}, "password": {"pw123456"}, "role": {"aggregator"},
	})

	assert.Equal(t, []string{"create-account", "write-record"}, id.calls)
	assert.Equal(t, "users/uid-new", store.path)

	_, body := c.get("/")
	assert.Contains(t, body, "Signed in as <strong>ada@farm.io</strong>")
	assert.Contains(t, body, auth.MsgSignUpOK)
}

func TestSubmitSignUp_EmailExistenteConservaPantalla(t *testing.T) {
	c, id, _ := newTestApp(t)
	id.createErr = &domain.IdentityError{Code: "EMAIL_EXISTS", Err: domain.ErrEmailAlreadyInUse}

	c.do(httptest.NewRequest(http.MethodGet, "/view/signup", nil))
	c.postForm("/signup", url.Values{
		"name": {"Ada"}, "email": {"ada@farm.io"}, "password": {"pw123456"}, "role": {"admin"},
	})

	assert.Equal(t, []string{"create-account"}, id.calls, "sin escritura de perfil")

	_, body := c.get("/")
	assert.Contains(t, body, "Sign up failed: email already in use")
	assert.Contains(t, body, `action="/signup"`)
	assert.Contains(t, body, `value="admin" checked`)
	assert.NotContains(t, body, "pw123456")
}

func TestLogout_BorraCookieYVuelveALanding(t *testing.T) {
	c, _, _ := newTestApp(t)

	c.postForm("/login", url.Values{"email": {"a@b.com"}, "password": {"pw123456"}})
	require.True(t, c.hasCookie(apphttp.SessionCookieName))

	resp := c.postForm("/logout", url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.False(t, c.hasCookie(apphttp.SessionCookieName))

	_, body := c.get("/")
	assert.Contains(t, body, "Connecting Farmers &amp; Aggregators")
	assert.Contains(t, body, auth.MsgLogoutOK)
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_LoginYMe(t *testing.T) {
	c, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.com","password":"pw123456"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, auth.MsgLoginOK, out.Message)
	require.NotEmpty(t, out.Token)

	me := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	me.Header.Set(fiber.HeaderAuthorization, "Bearer "+out.Token)
	resp, err = c.app.Test(me, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user dto.SessionUser
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, dto.SessionUser{UID: "uid-1", Email: "a@b.com"}, user)
}

func TestAPI_MeSinTokenEs401(t *testing.T) {
	c, _, _ := newTestApp(t)

	for _, header := range []string{"", "Bearer not-a-jwt", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := c.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAPI_RegisterEmailExistente(t *testing.T) {
	c, id, _ := newTestApp(t)
	id.createErr = &domain.IdentityError{Code: "EMAIL_EXISTS", Err: domain.ErrEmailAlreadyInUse}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Ada","email":"a@b.com","password":"pw123456"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "EMAIL_EXISTS", out.Code)
	assert.Equal(t, "Sign up failed: email already in use", out.Message)
}

func TestHealth(t *testing.T) {
	c, _, _ := newTestApp(t)

	resp, body := c.get("/health")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"agrilink-test"}`, body)
}
