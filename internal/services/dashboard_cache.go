package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/orderbridge-backend/internal/observability"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
)

const defaultDashboardCacheTTL = 60 * time.Second

// DashboardCache stores tenant summaries per viewer. Implementations never
// fail a request: errors are logged and treated as a miss.
//
// Get reports the tenant generation it observed; Set stores under that
// generation so a summary computed before an Invalidate is never served after it.
// A negative generation means the lookup failed and Set is skipped.
type DashboardCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, viewer *uuid.UUID) (s *DashboardSummary, gen int64, ok bool)
	Set(ctx context.Context, tenantID uuid.UUID, gen int64, viewer *uuid.UUID, s DashboardSummary)
	// Invalidate drops every cached summary of the tenant.
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

type noopDashboardCache struct{}

func NewNoopDashboardCache() DashboardCache { return noopDashboardCache{} }

func (noopDashboardCache) Get(context.Context, uuid.UUID, *uuid.UUID) (*DashboardSummary, int64, bool) {
	return nil, -1, false
}
func (noopDashboardCache) Set(context.Context, uuid.UUID, int64, *uuid.UUID, DashboardSummary) {}
func (noopDashboardCache) Invalidate(context.Context, uuid.UUID)                              {}

// redisDashboardCache namespaces entries by a per-tenant generation counter;
// bumping the counter orphans every entry of the previous generation, which
// then expires through its TTL.
type redisDashboardCache struct {
	log     *logger.Logger
	rdb     goredis.UniversalClient
	ttl     time.Duration
	metrics *observability.Metrics
}

func NewRedisDashboardCache(log *logger.Logger, rdb goredis.UniversalClient, ttl time.Duration, metrics *observability.Metrics) DashboardCache {
	if rdb == nil {
		return noopDashboardCache{}
	}
	if ttl <= 0 {
		ttl = defaultDashboardCacheTTL
	}
	return &redisDashboardCache{
		log:     log.With("service", "DashboardCache"),
		rdb:     rdb,
		ttl:     ttl,
		metrics: metrics,
	}
}

func generationKey(tenantID uuid.UUID) string {
	return "orders:dashboard:" + tenantID.String() + ":gen"
}

func summaryKey(tenantID uuid.UUID, gen int64, viewer *uuid.UUID) string {
	scope := "all"
	if viewer != nil {
		scope = "user:" + viewer.String()
	}
	return fmt.Sprintf("orders:dashboard:%s:g%d:%s", tenantID, gen, scope)
}

func (c *redisDashboardCache) generation(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(tenantID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisDashboardCache) count(result string) {
	if c.metrics != nil {
		c.metrics.IncDashboardCache(result)
	}
}

func (c *redisDashboardCache) Get(ctx context.Context, tenantID uuid.UUID, viewer *uuid.UUID) (*DashboardSummary, int64, bool) {
	gen, err := c.generation(ctx, tenantID)
	if err != nil {
		c.log.Warn("dashboard cache generation read failed", "tenant_id", tenantID, "error", err)
		c.count("error")
		return nil, -1, false
	}
	raw, err := c.rdb.Get(ctx, summaryKey(tenantID, gen, viewer)).Bytes()
	if errors.Is(err, goredis.Nil) {
		c.count("miss")
		return nil, gen, false
	}
	if err != nil {
		c.log.Warn("dashboard cache read failed", "tenant_id", tenantID, "error", err)
		c.count("error")
		return nil, gen, false
	}
	var s DashboardSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		c.log.Warn("dashboard cache entry unreadable", "tenant_id", tenantID, "error", err)
		c.count("error")
		return nil, gen, false
	}
	c.count("hit")
	return &s, gen, true
}

func (c *redisDashboardCache) Set(ctx context.Context, tenantID uuid.UUID, gen int64, viewer *uuid.UUID, s DashboardSummary) {
	if gen < 0 {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, summaryKey(tenantID, gen, viewer), raw, c.ttl).Err(); err != nil {
		c.log.Warn("dashboard cache write failed", "tenant_id", tenantID, "error", err)
	}
}

func (c *redisDashboardCache) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	if err := c.rdb.Incr(ctx, generationKey(tenantID)).Err(); err != nil {
		c.log.Warn("dashboard cache invalidation failed", "tenant_id", tenantID, "error", err)
	}
}
