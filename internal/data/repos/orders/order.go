package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	types "github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListFilter narrows the order listing. UserID, when set, inner-joins the
// active responsibilities of that user.
type ListFilter struct {
	PaymentStatus   types.PaymentStatus
	WorkStatus      types.WorkStatus
	ClientID        *uuid.UUID
	FunctionalityID *uuid.UUID
	UserID          *uuid.UUID
	From            *time.Time
	To              *time.Time
	Page            int
	PageSize        int
}

// Normalize clamps paging to defaults.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type OrderRepo interface {
	Create(dbc dbctx.Context, order *types.Order) error
	GetByID(dbc dbctx.Context, tenantID, id uuid.UUID) (*types.Order, error)
	GetByIDs(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*types.Order, error)
	CountForTenantIncludingArchived(dbc dbctx.Context, tenantID uuid.UUID) (int64, error)
	UpdateFields(dbc dbctx.Context, tenantID, id uuid.UUID, updates map[string]any) error
	Archive(dbc dbctx.Context, tenantID, id uuid.UUID) error
	ListIDs(dbc dbctx.Context, tenantID uuid.UUID, f ListFilter) ([]uuid.UUID, int64, error)
	SumAmountTotal(dbc dbctx.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	CountByPaymentStatus(dbc dbctx.Context, tenantID uuid.UUID, userID *uuid.UUID) ([]StatusCount, error)
	CountByWorkStatus(dbc dbctx.Context, tenantID uuid.UUID, userID *uuid.UUID) ([]StatusCount, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{
		db:  db,
		log: baseLog.With("repo", "OrderRepo"),
	}
}

func (r *orderRepo) Create(dbc dbctx.Context, order *types.Order) error {
	return dbc.DB(r.db).Create(order).Error
}

func (r *orderRepo) GetByID(dbc dbctx.Context, tenantID, id uuid.UUID) (*types.Order, error) {
	if tenantID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var out types.Order
	err := dbc.DB(r.db).
		Scopes(active("orders")).
		Where("orders.id = ? AND orders.tenant_id = ?", id, tenantID).
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *orderRepo) GetByIDs(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*types.Order, error) {
	var out []*types.Order
	if len(ids) == 0 {
		return out, nil
	}
	err := dbc.DB(r.db).
		Scopes(active("orders")).
		Where("orders.tenant_id = ? AND orders.id IN ?", tenantID, ids).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountForTenantIncludingArchived feeds order-number generation, so archived
// orders keep their numbers reserved.
func (r *orderRepo) CountForTenantIncludingArchived(dbc dbctx.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	err := dbc.DB(r.db).
		Model(&types.Order{}).
		Where("tenant_id = ?", tenantID).
		Count(&n).Error
	return n, err
}

func (r *orderRepo) UpdateFields(dbc dbctx.Context, tenantID, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return dbc.DB(r.db).
		Model(&types.Order{}).
		Scopes(active("orders")).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Updates(updates).Error
}

func (r *orderRepo) Archive(dbc dbctx.Context, tenantID, id uuid.UUID) error {
	return r.UpdateFields(dbc, tenantID, id, archiveUpdates())
}

func (r *orderRepo) filtered(dbc dbctx.Context, tenantID uuid.UUID, f ListFilter) *gorm.DB {
	q := dbc.DB(r.db).
		Model(&types.Order{}).
		Scopes(active("orders")).
		Where("orders.tenant_id = ?", tenantID)
	if f.PaymentStatus != "" {
		q = q.Where("orders.payment_status = ?", f.PaymentStatus)
	}
	if f.WorkStatus != "" {
		q = q.Where("orders.work_status = ?", f.WorkStatus)
	}
	if f.ClientID != nil {
		q = q.Where("orders.client_id = ?", *f.ClientID)
	}
	if f.From != nil {
		q = q.Where("orders.contract_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("orders.contract_date <= ?", *f.To)
	}
	if f.FunctionalityID != nil || f.UserID != nil {
		q = q.Joins("JOIN order_items ON order_items.order_id = orders.id AND order_items.lifecycle = ?", types.LifecycleActive)
		if f.FunctionalityID != nil {
			q = q.Where("order_items.functionality_id = ?", *f.FunctionalityID)
		}
		if f.UserID != nil {
			q = q.Joins(
				"JOIN order_item_responsibilities ON order_item_responsibilities.order_item_id = order_items.id AND order_item_responsibilities.lifecycle = ? AND order_item_responsibilities.user_id = ?",
				types.LifecycleActive, *f.UserID,
			)
		}
	}
	return q
}

// ListIDs returns one page of order ids (contract date desc, number desc) and
// the total number of matching orders.
func (r *orderRepo) ListIDs(dbc dbctx.Context, tenantID uuid.UUID, f ListFilter) ([]uuid.UUID, int64, error) {
	f = f.Normalize()

	var total int64
	if err := r.filtered(dbc, tenantID, f).Distinct("orders.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []uuid.UUID{}, 0, nil
	}

	var rows []struct {
		ID          uuid.UUID
		OrderNumber string
	}
	err := r.filtered(dbc, tenantID, f).
		Distinct("orders.id", "orders.contract_date", "orders.order_number").
		Order("orders.contract_date DESC").
		Order("orders.order_number DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, total, nil
}

func (r *orderRepo) SumAmountTotal(dbc dbctx.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := dbc.DB(r.db).
		Model(&types.Order{}).
		Scopes(active("orders")).
		Where("orders.tenant_id = ?", tenantID).
		Select("COALESCE(SUM(orders.amount_total), 0)").
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return money(sum), nil
}

func (r *orderRepo) CountByPaymentStatus(dbc dbctx.Context, tenantID uuid.UUID, userID *uuid.UUID) ([]StatusCount, error) {
	return r.countBy(dbc, tenantID, userID, "orders.payment_status")
}

func (r *orderRepo) CountByWorkStatus(dbc dbctx.Context, tenantID uuid.UUID, userID *uuid.UUID) ([]StatusCount, error) {
	return r.countBy(dbc, tenantID, userID, "orders.work_status")
}

func (r *orderRepo) countBy(dbc dbctx.Context, tenantID uuid.UUID, userID *uuid.UUID, column string) ([]StatusCount, error) {
	var out []StatusCount
	err := r.filtered(dbc, tenantID, ListFilter{UserID: userID}).
		Select(column + " AS status, COUNT(DISTINCT orders.id) AS count").
		Group(column).
		Order(column).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
