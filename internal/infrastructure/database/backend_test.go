package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-clinic-backend/config"
)

func TestResolveBackendConfigPinWins(t *testing.T) {
	backend, err := ResolveBackend(config.AppConfig{Backend: "gorm"})
	require.NoError(t, err)
	assert.Equal(t, BackendGorm, backend)

	backend, err = ResolveBackend(config.AppConfig{Backend: "pgx"})
	require.NoError(t, err)
	assert.Equal(t, BackendPgx, backend)
}

func TestResolveBackendFallsBackToBakedDefault(t *testing.T) {
	backend, err := ResolveBackend(config.AppConfig{})
	require.NoError(t, err)
	assert.Equal(t, Backend(DefaultBackend), backend)
}

func TestResolveBackendRejectsUnknownName(t *testing.T) {
	_, err := ResolveBackend(config.AppConfig{Backend: "sqlite"})
	assert.Error(t, err)
}
