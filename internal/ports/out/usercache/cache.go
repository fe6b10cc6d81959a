package usercache

import (
	"context"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
)

// Key returns the cache key for a user.
func Key(id domain.UserID) string {
	return "user:" + string(id)
}

// Cache mirrors user records keyed by Key(id). Entries have no TTL.
// The mirror is write-only: nothing in the gateway reads it back.
type Cache interface {
	Set(ctx context.Context, u domain.User) error
	Delete(ctx context.Context, id domain.UserID) error
}
