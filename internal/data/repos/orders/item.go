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

type OrderItemRepo interface {
	Create(dbc dbctx.Context, items []*types.OrderItem) ([]*types.OrderItem, error)
	GetByID(dbc dbctx.Context, tenantID, orderID, itemID uuid.UUID) (*types.OrderItem, error)
	GetByOrderIDs(dbc dbctx.Context, orderIDs []uuid.UUID) ([]*types.OrderItem, error)
	SumActivePrice(dbc dbctx.Context, orderID uuid.UUID) (decimal.Decimal, error)
	UpdateStatus(dbc dbctx.Context, itemID uuid.UUID, status types.ItemStatus) error
	Archive(dbc dbctx.Context, itemIDs []uuid.UUID) error
	CountOverdue(dbc dbctx.Context, tenantID uuid.UUID, userID *uuid.UUID, now time.Time) (int64, error)
}

type orderItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderItemRepo(db *gorm.DB, baseLog *logger.Logger) OrderItemRepo {
	return &orderItemRepo{
		db:  db,
		log: baseLog.With("repo", "OrderItemRepo"),
	}
}

func (r *orderItemRepo) Create(dbc dbctx.Context, items []*types.OrderItem) ([]*types.OrderItem, error) {
	if len(items) == 0 {
		return []*types.OrderItem{}, nil
	}
	if err := dbc.DB(r.db).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderItemRepo) GetByID(dbc dbctx.Context, tenantID, orderID, itemID uuid.UUID) (*types.OrderItem, error) {
	var out types.OrderItem
	err := dbc.DB(r.db).
		Scopes(active("order_items")).
		Where("order_items.id = ? AND order_items.order_id = ? AND order_items.tenant_id = ?", itemID, orderID, tenantID).
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

func (r *orderItemRepo) GetByOrderIDs(dbc dbctx.Context, orderIDs []uuid.UUID) ([]*types.OrderItem, error) {
	var out []*types.OrderItem
	if len(orderIDs) == 0 {
		return out, nil
	}
	err := dbc.DB(r.db).
		Scopes(active("order_items")).
		Where("order_items.order_id IN ?", orderIDs).
		Order("order_items.created_at ASC").
		Order("order_items.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderItemRepo) SumActivePrice(dbc dbctx.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := dbc.DB(r.db).
		Model(&types.OrderItem{}).
		Scopes(active("order_items")).
		Where("order_items.order_id = ?", orderID).
		Select("COALESCE(SUM(order_items.price), 0)").
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return money(sum), nil
}

func (r *orderItemRepo) UpdateStatus(dbc dbctx.Context, itemID uuid.UUID, status types.ItemStatus) error {
	return dbc.DB(r.db).
		Model(&types.OrderItem{}).
		Scopes(active("order_items")).
		Where("id = ?", itemID).
		Update("item_status", status).Error
}

func (r *orderItemRepo) Archive(dbc dbctx.Context, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return dbc.DB(r.db).
		Model(&types.OrderItem{}).
		Where("id IN ?", itemIDs).
		Updates(archiveUpdates()).Error
}

// CountOverdue counts items past their client deadline that are not cancelled
// and whose order is not completed.
func (r *orderItemRepo) CountOverdue(dbc dbctx.Context, tenantID uuid.UUID, userID *uuid.UUID, now time.Time) (int64, error) {
	q := dbc.DB(r.db).
		Model(&types.OrderItem{}).
		Scopes(active("order_items")).
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.lifecycle = ?", types.LifecycleActive).
		Where("order_items.tenant_id = ?", tenantID).
		Where("order_items.client_deadline IS NOT NULL AND order_items.client_deadline < ?", now.UTC()).
		Where("order_items.item_status <> ?", types.ItemCancelled).
		Where("orders.work_status <> ?", types.WorkCompleted)
	if userID != nil {
		q = q.Joins(
			"JOIN order_item_responsibilities ON order_item_responsibilities.order_item_id = order_items.id AND order_item_responsibilities.lifecycle = ? AND order_item_responsibilities.user_id = ?",
			types.LifecycleActive, *userID,
		)
	}
	var n int64
	err := q.Distinct("order_items.id").Count(&n).Error
	return n, err
}
