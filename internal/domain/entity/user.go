package entity

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/agrilink-web/internal/domain"
)

// Role rol del participante en el marketplace.
type Role string

// Roles válidos para el perfil.
const (
	RoleFarmer     Role = "farmer"
	RoleAggregator Role = "aggregator"
	RoleAdmin      Role = "admin"
)

// DefaultRole rol preseleccionado en el formulario de registro.
const DefaultRole = RoleFarmer

// Roles lista los roles en el orden en que se muestran.
var Roles = []Role{RoleFarmer, RoleAggregator, RoleAdmin}

var roleTitle = cases.Title(language.English)

// ParseRole valida el rol. Cadena vacía devuelve DefaultRole.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return DefaultRole, nil
	case RoleFarmer, RoleAggregator, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRole, s)
	}
}

// Label devuelve el rol capitalizado para la UI ("Farmer").
func (r Role) Label() string {
	return roleTitle.String(string(r))
}

// UserHandle es lo que devuelve el servicio de identidad tras registrar o iniciar sesión.
type UserHandle struct {
	UID     string
	Email   string
	IDToken string // credencial opaca del proveedor; vacío en el proveedor local
}

// UserProfile registro de perfil escrito una sola vez al registrarse.
// Lo custodia el almacén externo; aquí no se cachea.
type UserProfile struct {
	UID       string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// Record devuelve el documento tal como se escribe en el almacén.
func (p UserProfile) Record() map[string]any {
	return map[string]any{
		"uid":       p.UID,
		"name":      p.Name,
		"email":     p.Email,
		"role":      string(p.Role),
		"createdAt": p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// ProfilePath ruta plana del perfil: <collection>/<uid>.
func ProfilePath(collection, uid string) string {
	return strings.Trim(collection, "/") + "/" + uid
}
