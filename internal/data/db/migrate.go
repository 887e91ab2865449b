package db

import (
	"fmt"

	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/domain/registry"
	"gorm.io/gorm"
)

// Models lists every table this service owns or reads, in creation order.
func Models() []any {
	return []any{
		// Registry read models; owned by the tenant/user CRUD service.
		&registry.Tenant{},
		&registry.User{},
		&registry.Client{},
		&registry.Functionality{},

		// Orders aggregate.
		&orders.Order{},
		&orders.OrderItem{},
		&orders.OrderItemResponsibility{},
		&orders.OrderInstallment{},
		&orders.OrderActivity{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
