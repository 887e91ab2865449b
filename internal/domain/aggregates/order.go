package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
)

var OrderAggregateContract = Contract{
	Name:             "Orders.OrderAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns order, item, responsibility and installment writes; amount_total is resummed and CAS-written on the order version.",
}

// OrderAggregate owns every write to an order and its children.
//
// TenantID arrives as the raw claim value and is validated by each method.
// Failures are *Error values with codes CodeValidation, CodeNotFound,
// CodeConflict, CodePreconditionFailed, CodeRetryable or CodeInternal.
type OrderAggregate interface {
	Aggregate

	Create(ctx context.Context, in CreateOrderInput) (CreateOrderResult, error)
	AddItem(ctx context.Context, in AddItemInput) (ItemMutationResult, error)
	RemoveItem(ctx context.Context, in RemoveItemInput) (ItemMutationResult, error)
	// UpdateUnpaidInstallments never touches a paid installment.
	UpdateUnpaidInstallments(ctx context.Context, in UpdateInstallmentsInput) (UpdateInstallmentsResult, error)
	PayInstallment(ctx context.Context, in PayInstallmentInput) (PayInstallmentResult, error)
	UpdateItemStatus(ctx context.Context, in UpdateItemStatusInput) error
	PlanInstallments(ctx context.Context, in PlanInstallmentsInput) (PlanInstallmentsResult, error)
	ArchiveOrder(ctx context.Context, in ArchiveOrderInput) error
}

type ResponsibilityInput struct {
	UserID            uuid.UUID
	Amount            decimal.Decimal
	AssistantDeadline *time.Time
	Description       string
}

type ItemInput struct {
	FunctionalityID uuid.UUID
	Price           decimal.Decimal
	ClientDeadline  *time.Time
	ItemStatus      orders.ItemStatus
	Responsible     *ResponsibilityInput
}

type InstallmentInput struct {
	Amount        decimal.Decimal
	DueDate       time.Time
	Channel       string
	PaymentMethod string
}

type CreateOrderInput struct {
	TenantID      string
	ActorUserID   *uuid.UUID
	ClientID      uuid.UUID
	ContractDate  time.Time
	PaymentMethod string
	PaymentTerms  string
	WorkStatus    orders.WorkStatus
	HasInvoice    bool
	Description   string
	Items         []ItemInput
	// Installments are stored as given, sequence 1..n; no redistribution.
	Installments []InstallmentInput
}

type CreateOrderResult struct {
	OrderID     uuid.UUID
	OrderNumber string
	AmountTotal decimal.Decimal
	Warnings    []orders.Warning
}

type AddItemInput struct {
	TenantID    string
	ActorUserID *uuid.UUID
	OrderID     uuid.UUID
	Item        ItemInput
}

type RemoveItemInput struct {
	TenantID    string
	ActorUserID *uuid.UUID
	OrderID     uuid.UUID
	ItemID      uuid.UUID
}

type ItemMutationResult struct {
	OrderID     uuid.UUID
	ItemID      uuid.UUID
	AmountTotal decimal.Decimal
	Version     int
	// Warnings reports an installment plan that no longer matches the new total.
	Warnings []orders.Warning
}

// InstallmentEdit changes the non-nil fields of one installment.
type InstallmentEdit struct {
	InstallmentID uuid.UUID
	Amount        *decimal.Decimal
	DueDate       *time.Time
	Channel       *string
	PaymentMethod *string
}

type UpdateInstallmentsInput struct {
	TenantID     string
	ActorUserID  *uuid.UUID
	OrderID      uuid.UUID
	Edits        []InstallmentEdit
	Redistribute bool
}

type UpdateInstallmentsResult struct {
	Updated     []uuid.UUID
	SkippedPaid []uuid.UUID
	Warnings    []orders.Warning
}

type PayInstallmentInput struct {
	TenantID      string
	ActorUserID   *uuid.UUID
	OrderID       uuid.UUID
	InstallmentID uuid.UUID
	// PaidAt must be an explicit ISO-8601 date or timestamp.
	PaidAt string
}

type PayInstallmentResult struct {
	InstallmentID uuid.UUID
	PaidAt        time.Time
	AmountPaid    decimal.Decimal
	PaymentStatus orders.PaymentStatus
}

type UpdateItemStatusInput struct {
	TenantID    string
	ActorUserID *uuid.UUID
	OrderID     uuid.UUID
	ItemID      uuid.UUID
	Status      orders.ItemStatus
	// RestrictToUserID limits the write to items assigned to that user.
	RestrictToUserID *uuid.UUID
}

type PlanInstallmentsInput struct {
	TenantID      string
	ActorUserID   *uuid.UUID
	OrderID       uuid.UUID
	Count         int
	BaseDate      time.Time
	Channel       string
	PaymentMethod string
}

type PlanInstallmentsResult struct {
	InstallmentIDs []uuid.UUID
}

type ArchiveOrderInput struct {
	TenantID    string
	ActorUserID *uuid.UUID
	OrderID     uuid.UUID
}
