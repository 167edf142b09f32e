package storage

import (
	"context"
	"fmt"

	"adstudio/internal/domain"
	"adstudio/internal/infra"
)

// Open builds the store selected by cfg.StoreDriver. The returned closer
// releases any pool or connection the store holds.
func Open(ctx context.Context, cfg *infra.Config, logger infra.Logger) (domain.BlobStore, func(), error) {
	switch cfg.StoreDriver {
	case infra.StoreDriverMemory:
		return NewMemoryStore(), func() {}, nil
	case infra.StoreDriverPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		runner := infra.NewSQLRunner(pool, logger.With().Str("component", "catalog_sql").Logger())
		store, err := NewPostgresStore(ctx, runner)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case infra.StoreDriverRedis:
		rdb, err := infra.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		return NewRedisStore(rdb, cfg.RedisKeyPrefix), func() { _ = rdb.Close() }, nil
	default:
		store, err := NewFileStore(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
