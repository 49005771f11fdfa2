package snapshots

import (
	"context"
	"encoding/json"
	"fmt"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
)

// Cache persists the last normalized batch and the last-updated label.
type Cache struct {
	store Store
}

// NewCache wraps store with typed accessors.
func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

// Saved is what a previous run left behind.
type Saved struct {
	// Games is nil when no batch was ever saved and non-nil (possibly empty) otherwise.
	Games       []domaingames.Game
	LastUpdated string
}

// LoadSchedule returns the saved batch. A missing key yields a nil slice;
// a saved empty batch yields an empty non-nil slice.
func (c *Cache) LoadSchedule(ctx context.Context) ([]domaingames.Game, error) {
	if c == nil || c.store == nil {
		return nil, ErrNotConfigured
	}
	data, ok, err := c.store.Get(ctx, KeySchedule)
	if err != nil || !ok {
		return nil, err
	}
	games := []domaingames.Game{}
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("decode saved schedule: %w", err)
	}
	if games == nil {
		games = []domaingames.Game{}
	}
	return games, nil
}

// SaveSchedule overwrites the saved batch.
func (c *Cache) SaveSchedule(ctx context.Context, games []domaingames.Game) error {
	if c == nil || c.store == nil {
		return ErrNotConfigured
	}
	if games == nil {
		games = []domaingames.Game{}
	}
	data, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	return c.store.Put(ctx, KeySchedule, data)
}

// LoadLastUpdated returns the saved label, or "" when none was saved.
func (c *Cache) LoadLastUpdated(ctx context.Context) (string, error) {
	if c == nil || c.store == nil {
		return "", ErrNotConfigured
	}
	data, ok, err := c.store.Get(ctx, KeyLastUpdated)
	if err != nil || !ok {
		return "", err
	}
	return string(data), nil
}

// SaveLastUpdated overwrites the saved label.
func (c *Cache) SaveLastUpdated(ctx context.Context, label string) error {
	if c == nil || c.store == nil {
		return ErrNotConfigured
	}
	return c.store.Put(ctx, KeyLastUpdated, []byte(label))
}

// Load reads both keys. Errors from either read are returned after both are attempted.
func (c *Cache) Load(ctx context.Context) (Saved, error) {
	games, gamesErr := c.LoadSchedule(ctx)
	label, labelErr := c.LoadLastUpdated(ctx)
	if gamesErr != nil {
		return Saved{LastUpdated: label}, gamesErr
	}
	return Saved{Games: games, LastUpdated: label}, labelErr
}
