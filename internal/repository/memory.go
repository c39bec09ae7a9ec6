package repository

import (
	"context"
	"fmt"

	"github.com/mr1hm/go-wildfire-watch/internal/models"
)

// MemoryStore serves the seed straight from slices. Every accessor returns a
// copy so callers cannot alter the catalog.
type MemoryStore struct {
	countries []string
	wildfires []models.Wildfire
}

func NewMemoryStore(seed *Seed) *MemoryStore {
	return &MemoryStore{
		countries: append([]string(nil), seed.Countries...),
		wildfires: append([]models.Wildfire(nil), seed.Wildfires...),
	}
}

func (m *MemoryStore) Countries(ctx context.Context) ([]string, error) {
	return append([]string{}, m.countries...), nil
}

func (m *MemoryStore) Severities(ctx context.Context) ([]models.Severity, error) {
	return models.Severities(), nil
}

func (m *MemoryStore) Wildfires(ctx context.Context) ([]models.Wildfire, error) {
	return append([]models.Wildfire{}, m.wildfires...), nil
}

func (m *MemoryStore) WildfireByID(ctx context.Context, id int) (*models.Wildfire, error) {
	for _, w := range m.wildfires {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, fmt.Errorf("wildfire %d: %w", id, ErrNotFound)
}
