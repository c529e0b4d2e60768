package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	customError "github.com/segyhp/finance-tracker/pkg/errors"

	"github.com/redis/go-redis/v9"
)

const dashboardKeyPrefix = "dashboard:"

// DashboardCache keeps one JSON encoded summary per owner in Redis
type DashboardCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewDashboardCache(client redis.Cmdable, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

func dashboardKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("%s%s", dashboardKeyPrefix, ownerID)
}

// Get returns the cached summary; ok is false on a miss
func (c *DashboardCache) Get(ctx context.Context, ownerID uuid.UUID) (*domain.DashboardSummary, bool, error) {
	raw, err := c.client.Get(ctx, dashboardKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, customError.WrapCacheError(err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, false, customError.WrapCacheError(err)
	}

	return &summary, true, nil
}

func (c *DashboardCache) Set(ctx context.Context, ownerID uuid.UUID, summary *domain.DashboardSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return customError.WrapCacheError(err)
	}

	if err := c.client.Set(ctx, dashboardKey(ownerID), raw, c.ttl).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

func (c *DashboardCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.client.Del(ctx, dashboardKey(ownerID)).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}
