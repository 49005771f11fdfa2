package snapshots

import (
	"context"
	"errors"
	"testing"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
)

type failingStore struct {
	err error
}

func (f failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingStore) Put(context.Context, string, []byte) error         { return f.err }
func (f failingStore) Close() error                                      { return nil }

func TestCacheRoundTripsScheduleAndLabel(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(NewMemoryStore())

	batch := []domaingames.Game{
		{Team1: "CAN", Team2: "SUI", Score1: domaingames.IntPtr(5), Score2: domaingames.IntPtr(1), Status: domaingames.StatusFinished, RawDate: "2026-02-12 21:10:00"},
		{Team1: "USA", Team2: "GER", Status: domaingames.StatusScheduled},
	}
	if err := cache.SaveSchedule(ctx, batch); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := cache.SaveLastUpdated(ctx, "4:20 PM"); err != nil {
		t.Fatalf("save label: %v", err)
	}

	saved, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(saved.Games) != 2 || *saved.Games[0].Score1 != 5 || saved.Games[1].Score1 != nil {
		t.Fatalf("unexpected games %+v", saved.Games)
	}
	if saved.LastUpdated != "4:20 PM" {
		t.Fatalf("unexpected label %q", saved.LastUpdated)
	}
}

func TestCacheDistinguishesMissingFromEmpty(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(NewMemoryStore())

	games, err := cache.LoadSchedule(ctx)
	if err != nil || games != nil {
		t.Fatalf("expected nil batch for missing key, got %v %v", games, err)
	}

	if err := cache.SaveSchedule(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	games, err = cache.LoadSchedule(ctx)
	if err != nil || games == nil || len(games) != 0 {
		t.Fatalf("expected empty non-nil batch, got %v %v", games, err)
	}
}

func TestCacheNullPayloadLoadsAsEmpty(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Put(context.Background(), KeySchedule, []byte("null"))
	games, err := NewCache(store).LoadSchedule(context.Background())
	if err != nil || games == nil {
		t.Fatalf("expected empty non-nil batch, got %v %v", games, err)
	}
}

func TestCacheReportsCorruptSchedule(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Put(context.Background(), KeySchedule, []byte("{bad json"))
	_ = store.Put(context.Background(), KeyLastUpdated, []byte("1:00 PM"))

	saved, err := NewCache(store).Load(context.Background())
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if saved.Games != nil || saved.LastUpdated != "1:00 PM" {
		t.Fatalf("expected label without games, got %+v", saved)
	}
}

func TestCachePropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	cache := NewCache(failingStore{err: boom})
	if err := cache.SaveSchedule(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, err := cache.LoadLastUpdated(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestNilCacheNotConfigured(t *testing.T) {
	var cache *Cache
	if _, err := cache.LoadSchedule(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := NewCache(nil).SaveLastUpdated(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
