package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/agrilink-web/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentRepo)(nil)

// DocumentRepo almacén de documentos por ruta sobre una tabla JSONB.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository construye el adaptador de documentos.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

// WriteRecord crea o reemplaza el documento completo en path.
func (r *DocumentRepo) WriteRecord(ctx context.Context, path string, record map[string]any) error {
	path = strings.Trim(path, "/")
	if path == "" {
		return fmt.Errorf("write document: ruta vacía")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	query := `
		INSERT INTO documents (path, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := r.pool.Exec(ctx, query, path, string(data), time.Now()); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}
