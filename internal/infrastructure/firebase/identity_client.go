package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/agrilink-web/internal/application/ports"
	"github.com/jhoicas/agrilink-web/internal/domain"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
)

// Verificar en tiempo de compilación que IdentityClient implementa IdentityService.
var _ ports.IdentityService = (*IdentityClient)(nil)

// DefaultAuthURL base de la API Identity Toolkit.
const DefaultAuthURL = "https://identitytoolkit.googleapis.com/v1"

const maxResponseBytes = 1 << 20

// IdentityClient adaptador REST de Firebase Authentication (email/password).
// Usa net/http de la librería estándar; no requiere el SDK.
type IdentityClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewIdentityClient construye el adaptador. baseURL vacío usa DefaultAuthURL
// (el emulador expone la misma ruta bajo http://host:9099/identitytoolkit.googleapis.com/v1).
func NewIdentityClient(apiKey, baseURL string) *IdentityClient {
	if baseURL == "" {
		baseURL = DefaultAuthURL
	}
	return &IdentityClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type passwordResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateAccount llama a accounts:signUp.
func (c *IdentityClient) CreateAccount(ctx context.Context, email, password string) (*entity.UserHandle, error) {
	return c.passwordCall(ctx, "accounts:signUp", email, password)
}

// SignIn llama a accounts:signInWithPassword.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (*entity.UserHandle, error) {
	return c.passwordCall(ctx, "accounts:signInWithPassword", email, password)
}

// SignOut no llama a la red: los ID tokens son stateless y la sesión local la borra la capa HTTP.
func (c *IdentityClient) SignOut(context.Context, string) error {
	return nil
}

func (c *IdentityClient) passwordCall(ctx context.Context, method, email, password string) (*entity.UserHandle, error) {
	payload, err := json.Marshal(passwordRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("firebase: serializar petición: %w", err)
	}
	endpoint := c.baseURL + "/" + method + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("firebase: crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.IdentityError{Code: "NETWORK_REQUEST_FAILED", Message: "network request failed", Err: domain.ErrNetwork}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.IdentityError{Code: "NETWORK_REQUEST_FAILED", Message: "network request failed", Err: domain.ErrNetwork}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeIdentityError(resp.StatusCode, raw)
	}

	var out passwordResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("firebase: decodificar respuesta: %w", err)
	}
	if out.LocalID == "" {
		return nil, fmt.Errorf("firebase: respuesta sin localId")
	}
	return &entity.UserHandle{UID: out.LocalID, Email: out.Email, IDToken: out.IDToken}, nil
}

func decodeIdentityError(status int, raw []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error.Message == "" {
		idErr := &domain.IdentityError{Code: fmt.Sprintf("HTTP_%d", status), Message: http.StatusText(status)}
		if status >= http.StatusInternalServerError {
			idErr.Err = domain.ErrNetwork
		}
		return idErr
	}
	return MapErrorCode(env.Error.Message)
}

// MapErrorCode traduce el mensaje de error de Identity Toolkit ("WEAK_PASSWORD : Password should be...")
// a un IdentityError que se resuelve al sentinel de dominio.
func MapErrorCode(message string) *domain.IdentityError {
	code, detail := message, ""
	if i := strings.Index(message, " : "); i >= 0 {
		code, detail = strings.TrimSpace(message[:i]), strings.TrimSpace(message[i+3:])
	}

	idErr := &domain.IdentityError{Code: code, Message: detail}
	switch code {
	case "EMAIL_EXISTS":
		idErr.Err = domain.ErrEmailAlreadyInUse
	case "INVALID_LOGIN_CREDENTIALS", "EMAIL_NOT_FOUND", "INVALID_PASSWORD":
		idErr.Err = domain.ErrInvalidCredential
	case "WEAK_PASSWORD":
		idErr.Err = domain.ErrWeakPassword
	case "INVALID_EMAIL", "MISSING_EMAIL":
		idErr.Err = domain.ErrInvalidEmail
	case "MISSING_PASSWORD":
		idErr.Err = domain.ErrValidation
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		idErr.Err = domain.ErrTooManyRequests
	case "USER_DISABLED":
		idErr.Err = domain.ErrUserDisabled
	}
	if idErr.Message == "" {
		idErr.Message = strings.ToLower(strings.ReplaceAll(code, "_", " "))
	}
	return idErr
}
