package backend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrilink-web/internal/infrastructure/backend"
	"github.com/jhoicas/agrilink-web/internal/infrastructure/firebase"
	"github.com/jhoicas/agrilink-web/pkg/config"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

func TestOpen_Firebase(t *testing.T) {
	cfg := &config.Config{
		Identity: config.IdentityConfig{Provider: config.ProviderFirebase},
		Firebase: config.FirebaseConfig{APIKey: "k", ProjectID: "agrilink-test"},
	}

	be, err := backend.Open(context.Background(), cfg, false, logger.Nop())
	require.NoError(t, err)
	defer be.Close()

	assert.IsType(t, &firebase.IdentityClient{}, be.Identity)
	assert.IsType(t, &firebase.FirestoreStore{}, be.Store)
}

func TestOpen_ProveedorDesconocido(t *testing.T) {
	cfg := &config.Config{Identity: config.IdentityConfig{Provider: "ldap"}}

	_, err := backend.Open(context.Background(), cfg, false, logger.Nop())
	assert.Error(t, err)
}
