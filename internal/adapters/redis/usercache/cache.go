package usercache

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/usercache"
)

// Cache is a Redis implementation of usercache.Cache.
// Values are JSON-encoded users stored without expiry.
type Cache struct {
	client redis.UniversalClient
}

func NewCache(client redis.UniversalClient) *Cache {
	return &Cache{client: client}
}

// NewClient parses a redis:// URL and verifies the server answers PING.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, pkgerrors.Wrap(err, "ping redis")
	}
	return client, nil
}

type cachedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

func (c *Cache) Set(ctx context.Context, u domain.User) error {
	b, err := json.Marshal(cachedUser{
		ID:       string(u.ID),
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Website:  u.Website,
	})
	if err != nil {
		return pkgerrors.Wrap(err, "encode cached user")
	}
	key := usercache.Key(u.ID)
	if err := c.client.Set(ctx, key, b, 0).Err(); err != nil {
		return pkgerrors.Wrapf(err, "redis SET %s", key)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, id domain.UserID) error {
	key := usercache.Key(id)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return pkgerrors.Wrapf(err, "redis DEL %s", key)
	}
	return nil
}
