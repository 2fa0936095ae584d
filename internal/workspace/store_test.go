package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/huabuyu/geoai/internal/fixtures"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func sampleWorkspace() *Workspace {
	fx := fixtures.NewStatic()
	return &Workspace{Projects: fx.Projects(), Optimizations: fx.Optimizations()}
}

// --- Redis ---

func TestRedisStore_RoundTripWithTTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()

	if _, ok, err := store.Load(ctx, "u1"); err != nil || ok {
		t.Fatalf("expected missing workspace, got ok=%v err=%v", ok, err)
	}

	if err := store.Save(ctx, "u1", sampleWorkspace()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(keyPrefix + "u1"); ttl != time.Hour {
		t.Errorf("expected 1h TTL, got %s", ttl)
	}

	ws, ok, err := store.Load(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(ws.Projects) != 3 || ws.Optimizations[1].Page == nil {
		t.Errorf("workspace did not survive the round trip: %+v", ws)
	}

	mr.FastForward(2 * time.Hour)
	if _, ok, _ := store.Load(ctx, "u1"); ok {
		t.Error("expected workspace to expire")
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	if err := mr.Set(keyPrefix+"u1", "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := store.Load(context.Background(), "u1"); err == nil {
		t.Error("expected unmarshal error")
	}
}

// --- Memory ---

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Save(ctx, "u1", sampleWorkspace()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, _ := store.Load(ctx, "u1"); !ok {
		t.Fatal("expected workspace")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := store.Load(ctx, "u1"); ok {
		t.Error("expected workspace to expire")
	}
}

func TestMemoryStore_DoesNotAlias(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()
	ws := sampleWorkspace()
	_ = store.Save(ctx, "u1", ws)

	ws.Projects[0].Name = "mutated"
	got, _, _ := store.Load(ctx, "u1")
	if got.Projects[0].Name != "Brand X" {
		t.Error("stored workspace aliased the caller's value")
	}
}
