package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StockCache keeps the reconciled table per project in redis for a short
// TTL. Every warehouse write invalidates the project's entry. The cache is
// advisory: a nil client or a redis error just means recompute.
type StockCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewStockCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *StockCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *StockCache) key(projectID string) string {
	return "warehouse:stock:" + projectID
}

func (c *StockCache) Get(ctx context.Context, projectID string) ([]entity.StockItem, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key(projectID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("stock cache read failed", zap.String("project_id", projectID), zap.Error(err))
		}
		return nil, false
	}
	var items []entity.StockItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *StockCache) Set(ctx context.Context, projectID string, items []entity.StockItem) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(projectID), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("stock cache write failed", zap.String("project_id", projectID), zap.Error(err))
	}
}

func (c *StockCache) Invalidate(ctx context.Context, projectID string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(projectID)).Err(); err != nil {
		c.logger.Debug("stock cache invalidate failed", zap.String("project_id", projectID), zap.Error(err))
	}
}
