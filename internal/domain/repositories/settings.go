package repositories

import (
	"context"

	"scandoc/internal/domain/models"
)

// SettingsRepository is an opaque string key-value store with upsert
// semantics.
type SettingsRepository interface {
	// Set stores a value under a key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Get retrieves a value; domain.ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a key. Deleting an unknown key is a no-op.
	Delete(ctx context.Context, key string) error
}

// StatsRepository exposes read-only aggregate counts over the store.
type StatsRepository interface {
	Stats(ctx context.Context) (*models.StoreStats, error)
}
