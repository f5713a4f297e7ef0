package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/agrilink-web/internal/application/ports"
	"github.com/jhoicas/agrilink-web/internal/domain/repository"
)

var _ repository.DocumentStore = (*FirestoreStore)(nil)

// DefaultFirestoreURL base de la API REST de Firestore.
const DefaultFirestoreURL = "https://firestore.googleapis.com/v1"

// FirestoreStore escribe documentos en Firestore vía REST, en nombre del usuario
// cuyo ID token viaja en el contexto (ports.WithIDToken).
type FirestoreStore struct {
	projectID  string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewFirestoreStore construye el adaptador. baseURL vacío usa DefaultFirestoreURL.
func NewFirestoreStore(projectID, apiKey, baseURL string) *FirestoreStore {
	if baseURL == "" {
		baseURL = DefaultFirestoreURL
	}
	return &FirestoreStore{
		projectID:  projectID,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WriteRecord crea o reemplaza el documento en path (PATCH sin updateMask = set completo).
func (s *FirestoreStore) WriteRecord(ctx context.Context, path string, record map[string]any) error {
	docPath, err := escapeDocumentPath(path)
	if err != nil {
		return err
	}
	fields, err := encodeFields(record)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return fmt.Errorf("firestore: serializar documento: %w", err)
	}

	endpoint := fmt.Sprintf("%s/projects/%s/databases/(default)/documents/%s",
		s.baseURL, url.PathEscape(s.projectID), docPath)
	if s.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(s.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("firestore: crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok, ok := ports.IDTokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("firestore: petición: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		var env struct {
			Error struct {
				Message string `json:"message"`
				Status  string `json:"status"`
			} `json:"error"`
		}
		if json.Unmarshal(raw, &env) == nil && env.Error.Status != "" {
			return fmt.Errorf("firestore: %s: %s", env.Error.Status, env.Error.Message)
		}
		return fmt.Errorf("firestore: status %d", resp.StatusCode)
	}
	return nil
}

// escapeDocumentPath exige un número par de segmentos (colección/documento) y escapa cada uno.
func escapeDocumentPath(path string) (string, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || len(segments)%2 != 0 {
		return "", fmt.Errorf("firestore: ruta de documento inválida %q", path)
	}
	for i, seg := range segments {
		if seg == "" {
			return "", fmt.Errorf("firestore: ruta de documento inválida %q", path)
		}
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/"), nil
}

func encodeFields(record map[string]any) (map[string]any, error) {
	fields := make(map[string]any, len(record))
	for k, v := range record {
		enc, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("firestore: campo %q: %w", k, err)
		}
		fields[k] = enc
	}
	return fields, nil
}

// encodeValue convierte un valor Go al formato tipado de Firestore.
func encodeValue(v any) (map[string]any, error) {
	switch x := v.(type) {
	case nil:
		return map[string]any{"nullValue": nil}, nil
	case string:
		return map[string]any{"stringValue": x}, nil
	case bool:
		return map[string]any{"booleanValue": x}, nil
	case int:
		return map[string]any{"integerValue": strconv.Itoa(x)}, nil
	case int64:
		return map[string]any{"integerValue": strconv.FormatInt(x, 10)}, nil
	case float64:
		return map[string]any{"doubleValue": x}, nil
	case time.Time:
		return map[string]any{"timestampValue": x.UTC().Format(time.RFC3339Nano)}, nil
	case map[string]any:
		fields, err := encodeFields(x)
		if err != nil {
			return nil, err
		}
		return map[string]any{"mapValue": map[string]any{"fields": fields}}, nil
	case []any:
		values := make([]any, 0, len(x))
		for _, item := range x {
			enc, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			values = append(values, enc)
		}
		return map[string]any{"arrayValue": map[string]any{"values": values}}, nil
	default:
		return nil, fmt.Errorf("tipo no soportado %T", v)
	}
}
