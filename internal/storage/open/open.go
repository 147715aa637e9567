// Package open picks the storage backend for a connection string.
package open

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/postgres"
	"github.com/aanand-mishra/student-roster/internal/storage/sqlite"
)

// Backend names returned by Open.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Open connects to the store named by databaseURL. postgres:// and
// postgresql:// URLs go to PostgreSQL; anything else (sqlite://path,
// file:path or a bare path) is treated as a SQLite database file.
func Open(ctx context.Context, databaseURL string) (storage.Storage, string, error) {
	if databaseURL == "" {
		return nil, "", errors.New("open: empty database URL")
	}

	if postgres.IsURL(databaseURL) {
		db, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, "", err
		}
		return db, BackendPostgres, nil
	}

	db, err := sqlite.New(ctx, databaseURL)
	if err != nil {
		return nil, "", err
	}
	return db, BackendSQLite, nil
}
