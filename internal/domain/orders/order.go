package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is the aggregate root. Items and Installments are filled explicitly by
// the repositories and are never persisted through associations.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_tenant_number,priority:1" json:"tenant_id"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	OrderNumber   string          `gorm:"not null;column:order_number;uniqueIndex:idx_orders_tenant_number,priority:2" json:"order_number"`
	ContractDate  time.Time       `gorm:"not null;index" json:"contract_date"`
	AmountTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount_total"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount_paid"`
	PaymentMethod string          `gorm:"column:payment_method" json:"payment_method"`
	PaymentTerms  string          `gorm:"column:payment_terms" json:"payment_terms"`
	PaymentStatus PaymentStatus   `gorm:"not null;index" json:"payment_status"`
	WorkStatus    WorkStatus      `gorm:"not null;index" json:"work_status"`
	HasInvoice    bool            `gorm:"not null" json:"has_invoice"`
	Description   string          `gorm:"column:description" json:"description"`
	Version       int             `gorm:"not null" json:"version"`
	Lifecycle     Lifecycle       `gorm:"not null;index" json:"-"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`

	Items        []*OrderItem        `gorm:"-" json:"items,omitempty"`
	Installments []*OrderInstallment `gorm:"-" json:"installments,omitempty"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Lifecycle == "" {
		o.Lifecycle = LifecycleActive
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	if o.WorkStatus == "" {
		o.WorkStatus = WorkPending
	}
	return nil
}

type OrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	FunctionalityID uuid.UUID       `gorm:"type:uuid;not null;index" json:"functionality_id"`
	ClientID        uuid.UUID       `gorm:"type:uuid;not null" json:"client_id"`
	Price           decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	ClientDeadline  *time.Time      `gorm:"index" json:"client_deadline,omitempty"`
	ItemStatus      ItemStatus      `gorm:"not null;index" json:"item_status"`
	Lifecycle       Lifecycle       `gorm:"not null;index" json:"-"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	Responsibilities []*OrderItemResponsibility `gorm:"-" json:"responsibilities,omitempty"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Lifecycle == "" {
		i.Lifecycle = LifecycleActive
	}
	if i.ItemStatus == "" {
		i.ItemStatus = ItemPending
	}
	return nil
}

// OrderItemResponsibility is the cost-side assignment of an item to a collaborator.
// Delivered and PaidAt evolve independently of the item's client-facing status.
type OrderItemResponsibility struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderItemID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_item_id"`
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	FunctionalityID   uuid.UUID       `gorm:"type:uuid;not null" json:"functionality_id"`
	AssistantDeadline *time.Time      `json:"assistant_deadline,omitempty"`
	Amount            decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	Delivered         bool            `gorm:"not null" json:"delivered"`
	Description       string          `json:"description"`
	Lifecycle         Lifecycle       `gorm:"not null;index" json:"-"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

func (OrderItemResponsibility) TableName() string { return "order_item_responsibilities" }

func (r *OrderItemResponsibility) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Lifecycle == "" {
		r.Lifecycle = LifecycleActive
	}
	return nil
}

type OrderInstallment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Sequence      int             `gorm:"not null" json:"sequence"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	DueDate       time.Time       `gorm:"not null;index" json:"due_date"`
	PaidAt        *time.Time      `gorm:"index" json:"paid_at,omitempty"`
	Channel       string          `json:"channel"`
	PaymentMethod string          `json:"payment_method"`
	Lifecycle     Lifecycle       `gorm:"not null;index" json:"-"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

func (OrderInstallment) TableName() string { return "order_installments" }

func (i *OrderInstallment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Lifecycle == "" {
		i.Lifecycle = LifecycleActive
	}
	return nil
}

func (i *OrderInstallment) Paid() bool { return i != nil && i.PaidAt != nil }
