package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/orderbridge-backend/internal/domain/auth"
	httpH "github.com/yungbote/orderbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/orderbridge-backend/internal/http/middleware"
	"github.com/yungbote/orderbridge-backend/internal/observability"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	OrderHandler     *httpH.OrderHandler
	DashboardHandler *httpH.DashboardHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	if cfg.Metrics != nil {
		r.Use(httpMW.Metrics(cfg.Metrics))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireAuth())
	}

	can := httpMW.RequireCapability

	// Dashboard routes are registered before /orders/:id.
	if cfg.DashboardHandler != nil {
		api.GET("/orders/dashboard/summary", can(auth.CapDashboardRead), cfg.DashboardHandler.Summary)
		api.GET("/orders/dashboard/admin", can(auth.CapAdminDashboard), cfg.DashboardHandler.Admin)
	}

	// Orders
	if h := cfg.OrderHandler; h != nil {
		api.POST("/orders", can(auth.CapOrderWrite), h.Create)
		api.GET("/orders", can(auth.CapOrderRead), h.List)
		api.GET("/orders/:id", can(auth.CapOrderRead), h.Get)
		api.DELETE("/orders/:id", can(auth.CapOrderWrite), h.Archive)

		api.POST("/orders/:id/items", can(auth.CapOrderWrite), h.AddItem)
		api.DELETE("/orders/:id/items/:itemId", can(auth.CapOrderWrite), h.RemoveItem)
		api.PATCH("/orders/:id/items/:itemId/status", can(auth.CapItemStatusUpdate), h.UpdateItemStatus)

		api.PATCH("/orders/:id/installments", can(auth.CapOrderWrite), h.UpdateInstallments)
		api.POST("/orders/:id/installments/plan", can(auth.CapOrderWrite), h.PlanInstallments)
		api.PATCH("/orders/:id/installments/:instId/pay", can(auth.CapOrderWrite), h.PayInstallment)
	}

	return r
}
