package services

import (
	"context"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/domain/auth"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
)

// OrderResult is the re-read order after a write plus any plan warnings.
type OrderResult struct {
	Order    *orders.OrderView `json:"order"`
	Warnings []orders.Warning  `json:"warnings"`
}

// OrderService binds the caller's principal to every aggregate write and
// returns the order as that caller is allowed to see it afterwards.
type OrderService interface {
	Create(ctx context.Context, p auth.Principal, in domainagg.CreateOrderInput) (OrderResult, error)
	AddItem(ctx context.Context, p auth.Principal, orderID uuid.UUID, item domainagg.ItemInput) (OrderResult, error)
	RemoveItem(ctx context.Context, p auth.Principal, orderID, itemID uuid.UUID) (OrderResult, error)
	UpdateInstallments(ctx context.Context, p auth.Principal, orderID uuid.UUID, edits []domainagg.InstallmentEdit, redistribute bool) (OrderResult, error)
	PayInstallment(ctx context.Context, p auth.Principal, orderID, installmentID uuid.UUID, paidAt string) (OrderResult, error)
	UpdateItemStatus(ctx context.Context, p auth.Principal, orderID, itemID uuid.UUID, status orders.ItemStatus) (OrderResult, error)
	PlanInstallments(ctx context.Context, p auth.Principal, in domainagg.PlanInstallmentsInput) (OrderResult, error)
	Archive(ctx context.Context, p auth.Principal, orderID uuid.UUID) error
}

type orderService struct {
	log       *logger.Logger
	agg       domainagg.OrderAggregate
	query     OrderQueryService
	dashboard DashboardService
}

func NewOrderService(log *logger.Logger, agg domainagg.OrderAggregate, query OrderQueryService, dashboard DashboardService) OrderService {
	return &orderService{
		log:       log.With("service", "OrderService"),
		agg:       agg,
		query:     query,
		dashboard: dashboard,
	}
}

func actor(p auth.Principal) *uuid.UUID {
	if p.UserID == uuid.Nil {
		return nil
	}
	id := p.UserID
	return &id
}

// after invalidates cached dashboards and re-reads the order outside the
// write transaction.
func (s *orderService) after(ctx context.Context, p auth.Principal, orderID uuid.UUID, warnings []orders.Warning) (OrderResult, error) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, p.TenantID)
	}
	v, err := s.query.FindOne(ctx, p.TenantID, orderID, p.ViewAs())
	if err != nil {
		return OrderResult{}, err
	}
	if warnings == nil {
		warnings = []orders.Warning{}
	}
	return OrderResult{Order: v, Warnings: warnings}, nil
}

func (s *orderService) Create(ctx context.Context, p auth.Principal, in domainagg.CreateOrderInput) (OrderResult, error) {
	in.TenantID = p.TenantID.String()
	in.ActorUserID = actor(p)
	res, err := s.agg.Create(ctx, in)
	if err != nil {
		return OrderResult{}, err
	}
	s.log.Info("order created", "order_id", res.OrderID, "order_number", res.OrderNumber, "user_id", p.UserID)
	return s.after(ctx, p, res.OrderID, res.Warnings)
}

func (s *orderService) AddItem(ctx context.Context, p auth.Principal, orderID uuid.UUID, item domainagg.ItemInput) (OrderResult, error) {
	res, err := s.agg.AddItem(ctx, domainagg.AddItemInput{
		TenantID:    p.TenantID.String(),
		ActorUserID: actor(p),
		OrderID:     orderID,
		Item:        item,
	})
	if err != nil {
		return OrderResult{}, err
	}
	return s.after(ctx, p, orderID, res.Warnings)
}

func (s *orderService) RemoveItem(ctx context.Context, p auth.Principal, orderID, itemID uuid.UUID) (OrderResult, error) {
	res, err := s.agg.RemoveItem(ctx, domainagg.RemoveItemInput{
		TenantID:    p.TenantID.String(),
		ActorUserID: actor(p),
		OrderID:     orderID,
		ItemID:      itemID,
	})
	if err != nil {
		return OrderResult{}, err
	}
	return s.after(ctx, p, orderID, res.Warnings)
}

func (s *orderService) UpdateInstallments(ctx context.Context, p auth.Principal, orderID uuid.UUID, edits []domainagg.InstallmentEdit, redistribute bool) (OrderResult, error) {
	res, err := s.agg.UpdateUnpaidInstallments(ctx, domainagg.UpdateInstallmentsInput{
		TenantID:     p.TenantID.String(),
		ActorUserID:  actor(p),
		OrderID:      orderID,
		Edits:        edits,
		Redistribute: redistribute,
	})
	if err != nil {
		return OrderResult{}, err
	}
	if len(res.SkippedPaid) > 0 {
		s.log.Debug("paid installments left unchanged", "order_id", orderID, "skipped", len(res.SkippedPaid))
	}
	return s.after(ctx, p, orderID, res.Warnings)
}

func (s *orderService) PayInstallment(ctx context.Context, p auth.Principal, orderID, installmentID uuid.UUID, paidAt string) (OrderResult, error) {
	_, err := s.agg.PayInstallment(ctx, domainagg.PayInstallmentInput{
		TenantID:      p.TenantID.String(),
		ActorUserID:   actor(p),
		OrderID:       orderID,
		InstallmentID: installmentID,
		PaidAt:        paidAt,
	})
	if err != nil {
		return OrderResult{}, err
	}
	return s.after(ctx, p, orderID, nil)
}

func (s *orderService) UpdateItemStatus(ctx context.Context, p auth.Principal, orderID, itemID uuid.UUID, status orders.ItemStatus) (OrderResult, error) {
	err := s.agg.UpdateItemStatus(ctx, domainagg.UpdateItemStatusInput{
		TenantID:         p.TenantID.String(),
		ActorUserID:      actor(p),
		OrderID:          orderID,
		ItemID:           itemID,
		Status:           status,
		RestrictToUserID: p.ViewAs(),
	})
	if err != nil {
		return OrderResult{}, err
	}
	return s.after(ctx, p, orderID, nil)
}

func (s *orderService) PlanInstallments(ctx context.Context, p auth.Principal, in domainagg.PlanInstallmentsInput) (OrderResult, error) {
	in.TenantID = p.TenantID.String()
	in.ActorUserID = actor(p)
	if _, err := s.agg.PlanInstallments(ctx, in); err != nil {
		return OrderResult{}, err
	}
	return s.after(ctx, p, in.OrderID, nil)
}

func (s *orderService) Archive(ctx context.Context, p auth.Principal, orderID uuid.UUID) error {
	err := s.agg.ArchiveOrder(ctx, domainagg.ArchiveOrderInput{
		TenantID:    p.TenantID.String(),
		ActorUserID: actor(p),
		OrderID:     orderID,
	})
	if err != nil {
		return err
	}
	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx, p.TenantID)
	}
	s.log.Info("order archived", "order_id", orderID, "user_id", p.UserID)
	return nil
}
