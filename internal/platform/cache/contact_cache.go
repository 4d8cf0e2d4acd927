package cache

import (
	"context"
	"encoding/json"
	"time"

	"contacts_api/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// ContactCache keeps each user's contact list in Redis under a key derived
// from the owner id, so one user's cache can never serve another user's data.
// It is strictly best-effort: any Redis failure is treated as a miss and the
// caller falls back to the database.
type ContactCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewContactCache(rdb *redis.Client, ttl time.Duration) *ContactCache {
	return &ContactCache{rdb: rdb, ttl: ttl}
}

func contactListKey(ownerID string) string {
	return "contacts:owner:" + ownerID
}

func (c *ContactCache) Get(ctx context.Context, ownerID string) ([]model.Contact, bool) {
	data, err := c.rdb.Get(ctx, contactListKey(ownerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var contacts []model.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, false
	}
	return contacts, true
}

func (c *ContactCache) Set(ctx context.Context, ownerID string, contacts []model.Contact) {
	data, err := json.Marshal(contacts)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, contactListKey(ownerID), data, c.ttl)
}

// Invalidate drops the owner's cached list. Called after every write so the
// next list read reflects the database.
func (c *ContactCache) Invalidate(ctx context.Context, ownerID string) {
	c.rdb.Del(ctx, contactListKey(ownerID))
}
