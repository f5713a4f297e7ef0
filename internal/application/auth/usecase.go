package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/agrilink-web/internal/application/dto"
	"github.com/jhoicas/agrilink-web/internal/application/ports"
	"github.com/jhoicas/agrilink-web/internal/domain"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
	"github.com/jhoicas/agrilink-web/internal/domain/repository"
)

// Config opciones del caso de uso.
type Config struct {
	ProfileCollection string // colección plana donde se escribe <collection>/<uid>
}

// AuthUseCase casos de uso de credenciales: registro, login y logout.
// Delega todo en el servicio de identidad y el almacén de documentos externos.
type AuthUseCase struct {
	identity ports.IdentityService
	store    repository.DocumentStore
	cfg      Config
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(identity ports.IdentityService, store repository.DocumentStore, cfg Config) *AuthUseCase {
	if cfg.ProfileCollection == "" {
		cfg.ProfileCollection = "users"
	}
	return &AuthUseCase{identity: identity, store: store, cfg: cfg, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// SignUp crea la cuenta y después escribe el perfil, en ese orden y una sola vez cada uno.
// Si falta un campo no se llama al servicio de identidad.
func (uc *AuthUseCase) SignUp(ctx context.Context, form entity.CredentialForm) (*dto.SessionUser, error) {
	form = form.Normalized()
	if err := validate(form, entity.FormSignUp); err != nil {
		return nil, err
	}
	role, err := entity.ParseRole(form.Role)
	if err != nil {
		return nil, err
	}

	handle, err := uc.identity.CreateAccount(ctx, form.Email, form.Password)
	if err != nil {
		return nil, err
	}

	profile := entity.UserProfile{
		UID:       handle.UID,
		Name:      form.Name,
		Email:     form.Email,
		Role:      role,
		CreatedAt: uc.now(),
	}
	path := entity.ProfilePath(uc.cfg.ProfileCollection, handle.UID)
	if err := uc.store.WriteRecord(ports.WithIDToken(ctx, handle.IDToken), path, profile.Record()); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrProfileWrite, path, err)
	}
	return sessionUser(handle, form.Email), nil
}

// Login verifica email/password contra el servicio de identidad.
func (uc *AuthUseCase) Login(ctx context.Context, form entity.CredentialForm) (*dto.SessionUser, error) {
	form = form.Normalized()
	if err := validate(form, entity.FormLogin); err != nil {
		return nil, err
	}
	handle, err := uc.identity.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		return nil, err
	}
	return sessionUser(handle, form.Email), nil
}

// Logout avisa al proveedor. La cookie de sesión la borra la capa HTTP.
func (uc *AuthUseCase) Logout(ctx context.Context, uid string) error {
	if uid == "" {
		return domain.ErrUnauthorized
	}
	return uc.identity.SignOut(ctx, uid)
}

func validate(form entity.CredentialForm, mode entity.FormMode) error {
	if missing := form.MissingFields(mode); len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func sessionUser(h *entity.UserHandle, fallbackEmail string) *dto.SessionUser {
	email := h.Email
	if email == "" {
		email = fallbackEmail
	}
	return &dto.SessionUser{UID: h.UID, Email: email}
}
