package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/orderbridge-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/observability"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
	"github.com/yungbote/orderbridge-backend/internal/services"
)

type Services struct {
	OrderAggregate domainagg.OrderAggregate
	Orders         services.OrderService
	Query          services.OrderQueryService
	Dashboard      services.DashboardService
	Verifier       services.TokenVerifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	agg := aggregates.NewOrderAggregate(aggregates.OrderAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log.With("aggregate", "OrderAggregate"),
			Hooks: aggregates.NewObservabilityHooks(metrics),
		},
		Orders:           reposet.Orders,
		Items:            reposet.Items,
		Responsibilities: reposet.Responsibilities,
		Installments:     reposet.Installments,
		Activities:       reposet.Activities,
	})

	query := services.NewOrderQueryService(log, services.OrderQueryDeps{
		Orders:             reposet.Orders,
		Items:              reposet.Items,
		Responsibilities:   reposet.Responsibilities,
		Installments:       reposet.Installments,
		Names:              reposet.Names,
		Metrics:            metrics,
		HydrateConcurrency: cfg.ListHydrateConcurrency,
	})

	cache := services.NewNoopDashboardCache()
	if clients.Redis != nil {
		cache = services.NewRedisDashboardCache(log, clients.Redis, cfg.DashboardCacheTTL, metrics)
	}
	dashboard := services.NewDashboardService(log, services.DashboardDeps{
		Orders:           reposet.Orders,
		Items:            reposet.Items,
		Responsibilities: reposet.Responsibilities,
		Installments:     reposet.Installments,
		Stats:            reposet.Stats,
		Cache:            cache,
	})

	return Services{
		OrderAggregate: agg,
		Orders:         services.NewOrderService(log, agg, query, dashboard),
		Query:          query,
		Dashboard:      dashboard,
		Verifier:       services.NewJWTVerifier(log, cfg.JWTSecretKey, cfg.JWTLeeway),
	}
}
