package orders

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActivityCreated             = "order.created"
	ActivityItemAdded           = "order.item_added"
	ActivityItemRemoved         = "order.item_removed"
	ActivityInstallmentsUpdated = "order.installments_updated"
	ActivityInstallmentPaid     = "order.installment_paid"
	ActivityItemStatusChanged   = "order.item_status_changed"
	ActivityInstallmentsPlanned = "order.installments_planned"
	ActivityArchived            = "order.archived"
)

// OrderActivity is an append-only audit row written inside each write transaction.
type OrderActivity struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ActorUserID *uuid.UUID     `gorm:"type:uuid" json:"actor_user_id,omitempty"`
	Action      string         `gorm:"not null;index" json:"action"`
	Payload     datatypes.JSON `json:"payload"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
}

func (OrderActivity) TableName() string { return "order_activities" }

func (a *OrderActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
