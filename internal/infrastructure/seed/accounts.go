// Package seed carga cuentas iniciales desde YAML y las registra por el
// mismo camino que el formulario de registro (cuenta + perfil).
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/agrilink-web/internal/application/dto"
	"github.com/jhoicas/agrilink-web/internal/domain"
	"github.com/jhoicas/agrilink-web/internal/domain/entity"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

// Account entrada del archivo de semillas.
type Account struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type accountsFile struct {
	Accounts []Account `yaml:"accounts"`
}

// LoadAccounts lee el archivo YAML:
//
//	accounts:
//	  - name: Ada
//	    email: ada@farm.io
//	    password: secret123
//	    role: farmer
func LoadAccounts(path string) ([]Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer semillas: %w", err)
	}
	var f accountsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decodificar semillas %s: %w", path, err)
	}
	return f.Accounts, nil
}

// SignUpper es lo único que necesita el seeder; lo implementa *auth.AuthUseCase.
type SignUpper interface {
	SignUp(ctx context.Context, form entity.CredentialForm) (*dto.SessionUser, error)
}

// Result resumen de una ejecución.
type Result struct {
	Created int
	Skipped int
}

// Seeder registra cuentas que aún no existen.
type Seeder struct {
	uc  SignUpper
	log *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(uc SignUpper, log *logger.Logger) *Seeder {
	return &Seeder{uc: uc, log: log}
}

// Run crea cada cuenta; "email ya en uso" se cuenta como omitida. Cualquier otro error corta.
func (s *Seeder) Run(ctx context.Context, accounts []Account) (Result, error) {
	var res Result
	for _, a := range accounts {
		_, err := s.uc.SignUp(ctx, entity.CredentialForm{
			Name:     a.Name,
			Email:    a.Email,
			Password: a.Password,
			Role:     a.Role,
		})
		switch {
		case err == nil:
			res.Created++
			s.log.Info().Str("email", a.Email).Str("role", a.Role).Msg("cuenta sembrada")
		case errors.Is(err, domain.ErrEmailAlreadyInUse):
			res.Skipped++
			s.log.Debug().Str("email", a.Email).Msg("cuenta ya existe, se omite")
		default:
			return res, fmt.Errorf("sembrar %s: %w", a.Email, err)
		}
	}
	return res, nil
}
