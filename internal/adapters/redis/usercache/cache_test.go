package usercache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client), mr
}

func TestCache_SetWritesJSONUnderUserKey(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	u := domain.User{ID: "42", Name: "Alice", Username: "alice1", Email: "a@x.com", Phone: "555", Website: "x.com"}

	if err := c.Set(context.Background(), u); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, err := mr.Get("user:42")
	if err != nil {
		t.Fatalf("miniredis Get: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("stored value is not JSON: %v (%q)", err, raw)
	}
	want := map[string]string{
		"id": "42", "name": "Alice", "username": "alice1",
		"email": "a@x.com", "phone": "555", "website": "x.com",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stored JSON mismatch (-want +got):\n%s", diff)
	}
	if ttl := mr.TTL("user:42"); ttl != 0 {
		t.Fatalf("TTL=%v, want none", ttl)
	}
}

func TestCache_SetOverwritesEntry(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	ctx := context.Background()

	u := domain.User{ID: "1", Name: "Bob", Username: "bob", Email: "b@x.com", Phone: "1", Website: "b.com"}
	if err := c.Set(ctx, u); err != nil {
		t.Fatalf("Set: %v", err)
	}
	u.Phone = "2"
	if err := c.Set(ctx, u); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, err := mr.Get("user:1")
	if err != nil {
		t.Fatalf("miniredis Get: %v", err)
	}
	var got cachedUser
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Phone != "2" {
		t.Fatalf("phone=%q, want overwritten value", got.Phone)
	}
}

func TestCache_DeleteRemovesKey(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, domain.User{ID: "9"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if mr.Exists("user:9") {
		t.Fatalf("key still present after Delete")
	}
	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, "9"); err != nil {
		t.Fatalf("Delete(absent): %v", err)
	}
}

func TestCache_ServerDownSurfacesError(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	mr.Close()

	if err := c.Set(context.Background(), domain.User{ID: "1"}); err == nil {
		t.Fatalf("expected error with server down")
	}
	if err := c.Delete(context.Background(), "1"); err == nil {
		t.Fatalf("expected Delete error with server down")
	}
}
