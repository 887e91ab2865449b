package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	types "github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ResponsibilityRepo interface {
	Create(dbc dbctx.Context, rs []*types.OrderItemResponsibility) ([]*types.OrderItemResponsibility, error)
	GetByItemIDs(dbc dbctx.Context, itemIDs []uuid.UUID) ([]*types.OrderItemResponsibility, error)
	ExistsForUser(dbc dbctx.Context, itemID, userID uuid.UUID) (bool, error)
	ArchiveByItemIDs(dbc dbctx.Context, itemIDs []uuid.UUID) error
	SumPayouts(dbc dbctx.Context, tenantID uuid.UUID, userID *uuid.UUID) (decimal.Decimal, error)
}

type responsibilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponsibilityRepo(db *gorm.DB, baseLog *logger.Logger) ResponsibilityRepo {
	return &responsibilityRepo{
		db:  db,
		log: baseLog.With("repo", "ResponsibilityRepo"),
	}
}

func (r *responsibilityRepo) Create(dbc dbctx.Context, rs []*types.OrderItemResponsibility) ([]*types.OrderItemResponsibility, error) {
	if len(rs) == 0 {
		return []*types.OrderItemResponsibility{}, nil
	}
	if err := dbc.DB(r.db).Create(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

// GetByItemIDs returns active responsibilities, oldest first per item.
func (r *responsibilityRepo) GetByItemIDs(dbc dbctx.Context, itemIDs []uuid.UUID) ([]*types.OrderItemResponsibility, error) {
	var out []*types.OrderItemResponsibility
	if len(itemIDs) == 0 {
		return out, nil
	}
	err := dbc.DB(r.db).
		Scopes(active("order_item_responsibilities")).
		Where("order_item_responsibilities.order_item_id IN ?", itemIDs).
		Order("order_item_responsibilities.created_at ASC").
		Order("order_item_responsibilities.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *responsibilityRepo) ExistsForUser(dbc dbctx.Context, itemID, userID uuid.UUID) (bool, error) {
	var n int64
	err := dbc.DB(r.db).
		Model(&types.OrderItemResponsibility{}).
		Scopes(active("order_item_responsibilities")).
		Where("order_item_id = ? AND user_id = ?", itemID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *responsibilityRepo) ArchiveByItemIDs(dbc dbctx.Context, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return dbc.DB(r.db).
		Model(&types.OrderItemResponsibility{}).
		Where("order_item_id IN ?", itemIDs).
		Updates(archiveUpdates()).Error
}

// SumPayouts totals active payouts on active items of active orders. With
// userID only that collaborator's payouts are counted.
func (r *responsibilityRepo) SumPayouts(dbc dbctx.Context, tenantID uuid.UUID, userID *uuid.UUID) (decimal.Decimal, error) {
	q := dbc.DB(r.db).
		Model(&types.OrderItemResponsibility{}).
		Scopes(active("order_item_responsibilities")).
		Joins("JOIN order_items ON order_items.id = order_item_responsibilities.order_item_id AND order_items.lifecycle = ?", types.LifecycleActive).
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.lifecycle = ?", types.LifecycleActive).
		Where("orders.tenant_id = ?", tenantID)
	if userID != nil {
		q = q.Where("order_item_responsibilities.user_id = ?", *userID)
	}
	var sum decimal.Decimal
	if err := q.Select("COALESCE(SUM(order_item_responsibilities.amount), 0)").Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return money(sum), nil
}
