package ports

import (
	"context"

	"github.com/jhoicas/agrilink-web/internal/domain/entity"
)

// IdentityService define el puerto de salida hacia el servicio de identidad externo.
// Lo implementan el cliente REST de Firebase y la tabla de cuentas en PostgreSQL.
// Los errores deben resolverse a los sentinels de domain (errors.Is).
type IdentityService interface {
	// CreateAccount crea la cuenta y devuelve el handle del usuario ya autenticado.
	CreateAccount(ctx context.Context, email, password string) (*entity.UserHandle, error)
	// SignIn verifica las credenciales.
	SignIn(ctx context.Context, email, password string) (*entity.UserHandle, error)
	// SignOut cierra la sesión del usuario en el proveedor (puede ser no-op).
	SignOut(ctx context.Context, uid string) error
}

type idTokenKey struct{}

// WithIDToken adjunta al contexto la credencial del usuario recién autenticado,
// para que el almacén de documentos escriba en su nombre.
func WithIDToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, idTokenKey{}, token)
}

// IDTokenFromContext devuelve la credencial adjunta, si existe.
func IDTokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(idTokenKey{}).(string)
	return tok, ok && tok != ""
}
