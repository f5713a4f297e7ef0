package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/agrilink-web/internal/application/ports"
	"github.com/jhoicas/agrilink-web/internal/domain"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
)

var _ ports.IdentityService = (*AccountRepo)(nil)

// MinPasswordLength mismo mínimo que aplica Firebase.
const MinPasswordLength = 6

// AccountRepo proveedor de identidad local sobre PostgreSQL (alternativa a Firebase).
type AccountRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewAccountRepository construye el adaptador de cuentas.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool, now: time.Now}
}

// CreateAccount hashea la contraseña con bcrypt y persiste la cuenta.
func (r *AccountRepo) CreateAccount(ctx context.Context, email, password string) (*entity.UserHandle, error) {
	email = normalizeEmail(email)
	// Solo la dirección desnuda: "Ada <ada@x.io>" también parsea pero no es un email válido aquí.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, &domain.IdentityError{Code: "auth/invalid-email", Err: domain.ErrInvalidEmail}
	}
	if len(password) < MinPasswordLength {
		return nil, &domain.IdentityError{Code: "auth/weak-password", Err: domain.ErrWeakPassword}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	uid := uuid.New().String()
	query := `
		INSERT INTO accounts (uid, email, password_hash, created_at, last_sign_in_at)
		VALUES ($1, $2, $3, $4, $4)`
	if _, err := r.pool.Exec(ctx, query, uid, email, string(hash), r.now()); err != nil {
		return nil, mapInsertError(err)
	}
	return &entity.UserHandle{UID: uid, Email: email}, nil
}

// SignIn verifica email/password. Email desconocido y contraseña incorrecta dan el mismo error.
// La lectura y el registro del último acceso van en la misma transacción.
func (r *AccountRepo) SignIn(ctx context.Context, email, password string) (*entity.UserHandle, error) {
	email = normalizeEmail(email)
	var handle *entity.UserHandle
	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			SELECT uid, email, password_hash, disabled
			FROM accounts WHERE lower(email) = $1
			FOR UPDATE`
		var (
			uid, stored, hash string
			disabled          bool
		)
		if err := tx.QueryRow(ctx, query, email).Scan(&uid, &stored, &hash, &disabled); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &domain.IdentityError{Code: "auth/invalid-credential", Err: domain.ErrInvalidCredential}
			}
			return fmt.Errorf("get account by email: %w", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			return &domain.IdentityError{Code: "auth/invalid-credential", Err: domain.ErrInvalidCredential}
		}
		if disabled {
			return &domain.IdentityError{Code: "auth/user-disabled", Err: domain.ErrUserDisabled}
		}
		if _, err := tx.Exec(ctx, `UPDATE accounts SET last_sign_in_at = $2 WHERE uid = $1`, uid, r.now()); err != nil {
			return fmt.Errorf("update last sign in: %w", err)
		}
		handle = &entity.UserHandle{UID: uid, Email: stored}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return handle, nil
}

// SignOut valida el uid. Los tokens de sesión son stateless: siguen siendo válidos hasta su expiración
// y la cookie la borra la capa HTTP.
func (r *AccountRepo) SignOut(_ context.Context, uid string) error {
	if _, err := uuid.Parse(uid); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// mapInsertError traduce el error del INSERT de cuentas: email duplicado -> ErrEmailAlreadyInUse.
func mapInsertError(err error) error {
	if isUniqueViolation(err) {
		return &domain.IdentityError{Code: "auth/email-already-in-use", Err: domain.ErrEmailAlreadyInUse}
	}
	return fmt.Errorf("insert account: %w", err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
