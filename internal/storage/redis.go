package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"marigold-suites/internal/domain"
)

const menuKey = "menu:snapshot"

// MenuCache keeps a TTL-bounded snapshot of the menu on the read path.
// The inventory store stays the source of truth; writers invalidate.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

func (c *MenuCache) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	payload, err := c.Client.Get(ctx, menuKey).Bytes()
	if err != nil {
		return nil, err
	}
	var items []domain.MenuItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *MenuCache) SetMenu(ctx context.Context, items []domain.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, menuKey, payload, c.TTL).Err()
}

func (c *MenuCache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, menuKey).Err()
}
