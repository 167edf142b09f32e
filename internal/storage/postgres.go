package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"adstudio/internal/domain"
	"adstudio/internal/infra"
	"adstudio/internal/sqlinline"
)

// PostgresStore keeps each key as a row of catalog_entries.
type PostgresStore struct {
	sql infra.SQLExecutor
}

// NewPostgresStore wraps a marker-aware executor, typically an
// infra.SQLRunner over a pgx pool, and ensures the table exists.
func NewPostgresStore(ctx context.Context, sql infra.SQLExecutor) (*PostgresStore, error) {
	if sql == nil {
		return nil, errors.New("storage: sql executor is required")
	}
	if _, err := sql.Exec(ctx, sqlinline.QEnsureCatalogTable); err != nil {
		return nil, fmt.Errorf("%w: ensure catalog table: %v", domain.ErrStorageUnavailable, err)
	}
	return &PostgresStore{sql: sql}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.sql.QueryRow(ctx, sqlinline.QSelectCatalogEntry, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return value, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	if _, err := s.sql.Exec(ctx, sqlinline.QUpsertCatalogEntry, key, data); err != nil {
		return fmt.Errorf("%w: upsert %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.sql.Exec(ctx, sqlinline.QDeleteCatalogEntry, key); err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

var _ domain.BlobStore = (*PostgresStore)(nil)
