package repos

import (
	"github.com/yungbote/orderbridge-backend/internal/data/repos/orders"
	"github.com/yungbote/orderbridge-backend/internal/data/repos/registry"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type OrderRepo = orders.OrderRepo
type OrderItemRepo = orders.OrderItemRepo
type ResponsibilityRepo = orders.ResponsibilityRepo
type InstallmentRepo = orders.InstallmentRepo
type OrderActivityRepo = orders.ActivityRepo
type OrderListFilter = orders.ListFilter
type StatusCount = orders.StatusCount

const (
	DefaultPageSize = orders.DefaultPageSize
	MaxPageSize     = orders.MaxPageSize
)

type RegistryNameRepo = registry.NameRepo
type RegistryStatsRepo = registry.StatsRepo

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return orders.NewOrderRepo(db, baseLog)
}
func NewOrderItemRepo(db *gorm.DB, baseLog *logger.Logger) OrderItemRepo {
	return orders.NewOrderItemRepo(db, baseLog)
}
func NewResponsibilityRepo(db *gorm.DB, baseLog *logger.Logger) ResponsibilityRepo {
	return orders.NewResponsibilityRepo(db, baseLog)
}
func NewInstallmentRepo(db *gorm.DB, baseLog *logger.Logger) InstallmentRepo {
	return orders.NewInstallmentRepo(db, baseLog)
}
func NewOrderActivityRepo(db *gorm.DB, baseLog *logger.Logger) OrderActivityRepo {
	return orders.NewActivityRepo(db, baseLog)
}

func NewRegistryNameRepo(db *gorm.DB, baseLog *logger.Logger) RegistryNameRepo {
	return registry.NewNameRepo(db, baseLog)
}
func NewRegistryStatsRepo(db *gorm.DB, baseLog *logger.Logger) RegistryStatsRepo {
	return registry.NewStatsRepo(db, baseLog)
}
