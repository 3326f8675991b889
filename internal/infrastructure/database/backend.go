package database

import (
	"fmt"

	"go-clinic-backend/config"
)

// Backend identifies which data-access implementation a binary uses.
type Backend string

const (
	// BackendPgx talks to PostgreSQL through a pgx pool with hand-built
	// parameterized SQL. The only backend with raw-query support.
	BackendPgx Backend = "pgx"

	// BackendGorm talks to PostgreSQL through gorm's fluent builder.
	BackendGorm Backend = "gorm"
)

// DefaultBackend is baked into the artifact at build time:
//
//	go build -ldflags "-X go-clinic-backend/internal/infrastructure/database.DefaultBackend=gorm"
//
// Freezing the choice in the binary keeps a deployed artifact from ever
// splitting its traffic across two data stores mid-process.
var DefaultBackend = string(BackendPgx)

// ResolveBackend picks the backend exactly once, at startup. A config pin
// overrides the baked default; anything unknown is a startup error, never a
// silent fallback.
func ResolveBackend(cfg config.AppConfig) (Backend, error) {
	name := cfg.Backend
	if name == "" {
		name = DefaultBackend
	}
	switch Backend(name) {
	case BackendPgx, BackendGorm:
		return Backend(name), nil
	}
	return "", fmt.Errorf("unknown data-access backend %q", name)
}
