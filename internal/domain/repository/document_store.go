package repository

import "context"

// DocumentStore define el puerto de persistencia hacia el almacén de documentos externo (DIP).
// path es una ruta tipo "users/<uid>"; record se guarda completo (sobrescribe).
type DocumentStore interface {
	WriteRecord(ctx context.Context, path string, record map[string]any) error
}
