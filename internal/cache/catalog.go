package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"creature_packs/internal/domain"
	"creature_packs/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

const (
	keyBoosterpacks   = "boosterpacks"
	keyBoosterpackIDs = "boosterpack_ids"
)

// CatalogCache stores rendered booster packs and the set of known pack ids in
// Redis. It is a pure performance layer: every method is safe to call on a
// nil or unconnected cache and degrades to a miss.
type CatalogCache struct {
	rdb *redis.Client
}

// New connects to Redis at addr. With an empty addr, or if the ping fails,
// the returned cache is disabled and all lookups miss.
func New(addr, password string, db int) *CatalogCache {
	if addr == "" {
		return &CatalogCache{}
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("catalog cache unavailable, running without cache", "error", err)
		return &CatalogCache{}
	}

	logger.Info("catalog cache connected", "addr", addr)
	return &CatalogCache{rdb: rdb}
}

// Enabled reports whether a Redis backend is connected.
func (c *CatalogCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// KnownPackIDs returns the cached set of pack ids, in no particular order.
func (c *CatalogCache) KnownPackIDs(ctx context.Context) ([]int, error) {
	if !c.Enabled() {
		return nil, nil
	}

	members, err := c.rdb.SMembers(ctx, keyBoosterpackIDs).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AddKnownPackIDs unions ids into the cached id set.
func (c *CatalogCache) AddKnownPackIDs(ctx context.Context, ids []int) error {
	if !c.Enabled() || len(ids) == 0 {
		return nil
	}

	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = strconv.Itoa(id)
	}
	return c.rdb.SAdd(ctx, keyBoosterpackIDs, members...).Err()
}

// GetPack returns the cached pack for id, or nil on a miss.
func (c *CatalogCache) GetPack(ctx context.Context, id int) (*domain.Boosterpack, error) {
	if !c.Enabled() {
		return nil, nil
	}

	raw, err := c.rdb.HGet(ctx, keyBoosterpacks, strconv.Itoa(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var pack domain.Boosterpack
	if err := json.Unmarshal([]byte(raw), &pack); err != nil {
		return nil, err
	}
	return &pack, nil
}

// PutPack stores a rendered pack keyed by id. Concurrent writers may race;
// both compute identical entries, so last write wins.
func (c *CatalogCache) PutPack(ctx context.Context, id int, pack *domain.Boosterpack) error {
	if !c.Enabled() {
		return nil
	}

	raw, err := json.Marshal(pack)
	if err != nil {
		return err
	}
	return c.rdb.HSet(ctx, keyBoosterpacks, strconv.Itoa(id), string(raw)).Err()
}
