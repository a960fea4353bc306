package kvstore

import (
	"context"
	"fmt"

	"github.com/caloclash/caloclash/internal/config"
	"github.com/caloclash/caloclash/internal/kvstore/memory"
	"github.com/caloclash/caloclash/internal/kvstore/postgres"
	"github.com/caloclash/caloclash/internal/kvstore/sqlite"
)

// Open constructs the Store backend selected by cfg.StoreMode.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreMode {
	case config.StoreModeMemory:
		return memory.New(), nil
	case config.StoreModeSQLite:
		return sqlite.New(cfg.SQLitePath)
	case config.StoreModePostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store mode %q", cfg.StoreMode)
	}
}
