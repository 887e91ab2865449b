package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/orderbridge-backend/internal/http/response"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
	"github.com/yungbote/orderbridge-backend/internal/services"
)

type DashboardHandler struct {
	log       *logger.Logger
	dashboard services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		log:       log.With("handler", "DashboardHandler"),
		dashboard: dashboard,
	}
}

// GET /api/orders/dashboard/summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	sum, err := h.dashboard.Summary(c.Request.Context(), p.TenantID, p.ViewAs())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, sum)
}

// GET /api/orders/dashboard/admin
func (h *DashboardHandler) Admin(c *gin.Context) {
	sum, err := h.dashboard.AdminSummary(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, sum)
}
