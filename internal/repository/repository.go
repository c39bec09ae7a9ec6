package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mr1hm/go-wildfire-watch/internal/config"
	"github.com/mr1hm/go-wildfire-watch/internal/models"
)

var ErrNotFound = errors.New("not found")

// ReferenceData is the read-only catalog the screens draw from: the country
// and severity pickers and the wildfire records themselves. It is loaded once
// at startup and never changes afterwards.
type ReferenceData interface {
	Countries(ctx context.Context) ([]string, error)
	Severities(ctx context.Context) ([]models.Severity, error)
	Wildfires(ctx context.Context) ([]models.Wildfire, error)
	WildfireByID(ctx context.Context, id int) (*models.Wildfire, error)
}

// Open loads the embedded seed into the configured backend. The returned
// close func releases the backend.
func Open(ctx context.Context, backend string) (ReferenceData, func() error, error) {
	seed, err := LoadSeed()
	if err != nil {
		return nil, nil, err
	}

	switch backend {
	case config.CatalogMemory:
		return NewMemoryStore(seed), func() error { return nil }, nil
	case config.CatalogSQLite:
		store, err := NewSQLiteStore(ctx, seed)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog backend %q", backend)
	}
}
