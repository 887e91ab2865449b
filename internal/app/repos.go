package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/orderbridge-backend/internal/data/repos"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
)

type Repos struct {
	Orders           repos.OrderRepo
	Items            repos.OrderItemRepo
	Responsibilities repos.ResponsibilityRepo
	Installments     repos.InstallmentRepo
	Activities       repos.OrderActivityRepo

	Names repos.RegistryNameRepo
	Stats repos.RegistryStatsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Orders:           repos.NewOrderRepo(db, log),
		Items:            repos.NewOrderItemRepo(db, log),
		Responsibilities: repos.NewResponsibilityRepo(db, log),
		Installments:     repos.NewInstallmentRepo(db, log),
		Activities:       repos.NewOrderActivityRepo(db, log),
		Names:            repos.NewRegistryNameRepo(db, log),
		Stats:            repos.NewRegistryStatsRepo(db, log),
	}
}
