// Package backend arma el servicio de identidad y el almacén de documentos según IDENTITY_PROVIDER.
package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/agrilink-web/internal/application/ports"
	"github.com/jhoicas/agrilink-web/internal/domain/repository"
	"github.com/jhoicas/agrilink-web/internal/infrastructure/firebase"
	"github.com/jhoicas/agrilink-web/internal/infrastructure/postgres"
	"github.com/jhoicas/agrilink-web/pkg/config"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

// Backend par identidad + documentos listo para el caso de uso de auth.
type Backend struct {
	Identity ports.IdentityService
	Store    repository.DocumentStore
	close    func()
}

// Close libera conexiones (pool de PostgreSQL). Seguro de llamar siempre.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open construye el backend configurado. Con postgres aplica el esquema si migrate es true.
func Open(ctx context.Context, cfg *config.Config, migrate bool, log *logger.Logger) (*Backend, error) {
	switch cfg.Identity.Provider {
	case config.ProviderFirebase:
		log.Info().Str("project", cfg.Firebase.ProjectID).Msg("backend de identidad: firebase")
		return &Backend{
			Identity: firebase.NewIdentityClient(cfg.Firebase.APIKey, cfg.Firebase.AuthURL),
			Store:    firebase.NewFirestoreStore(cfg.Firebase.ProjectID, cfg.Firebase.APIKey, cfg.Firebase.FirestoreURL),
		}, nil

	case config.ProviderPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if migrate {
			if err := postgres.ApplySchema(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("aplicar esquema: %w", err)
			}
			log.Info().Msg("esquema aplicado")
		}
		log.Info().Msg("backend de identidad: postgres")
		return &Backend{
			Identity: postgres.NewAccountRepository(pool),
			Store:    postgres.NewDocumentRepository(pool),
			close:    pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("IDENTITY_PROVIDER desconocido %q", cfg.Identity.Provider)
}
