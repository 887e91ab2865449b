package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/orderbridge-backend/internal/http"
	httpH "github.com/yungbote/orderbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/orderbridge-backend/internal/http/middleware"
	"github.com/yungbote/orderbridge-backend/internal/observability"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Order     *httpH.OrderHandler
	Dashboard *httpH.DashboardHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Order:     httpH.NewOrderHandler(log, services.Orders, services.Query),
		Dashboard: httpH.NewDashboardHandler(log, services.Dashboard),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Verifier),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	var serviceName string
	if cfg.OtelEnabled {
		serviceName = cfg.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      serviceName,
		CORSOrigins:      cfg.CORSOrigins,
		AuthMiddleware:   middleware.Auth,
		OrderHandler:     handlers.Order,
		DashboardHandler: handlers.Dashboard,
		HealthHandler:    handlers.Health,
	})
}
