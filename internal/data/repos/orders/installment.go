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

type InstallmentRepo interface {
	Create(dbc dbctx.Context, insts []*types.OrderInstallment) ([]*types.OrderInstallment, error)
	GetByOrderIDs(dbc dbctx.Context, orderIDs []uuid.UUID) ([]*types.OrderInstallment, error)
	UpdateUnpaid(dbc dbctx.Context, id uuid.UUID, updates map[string]any) (bool, error)
	MarkPaid(dbc dbctx.Context, id uuid.UUID, paidAt time.Time) (bool, error)
	SumPaid(dbc dbctx.Context, orderID uuid.UUID) (decimal.Decimal, error)
	CountUnpaid(dbc dbctx.Context, orderID uuid.UUID) (int64, error)
	CountPaid(dbc dbctx.Context, orderID uuid.UUID) (int64, error)
	ArchiveByOrder(dbc dbctx.Context, orderID uuid.UUID) error
	CountOverdueUnpaid(dbc dbctx.Context, now time.Time) (int64, error)
}

type installmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInstallmentRepo(db *gorm.DB, baseLog *logger.Logger) InstallmentRepo {
	return &installmentRepo{
		db:  db,
		log: baseLog.With("repo", "InstallmentRepo"),
	}
}

func (r *installmentRepo) Create(dbc dbctx.Context, insts []*types.OrderInstallment) ([]*types.OrderInstallment, error) {
	if len(insts) == 0 {
		return []*types.OrderInstallment{}, nil
	}
	if err := dbc.DB(r.db).Create(&insts).Error; err != nil {
		return nil, err
	}
	return insts, nil
}

// GetByOrderIDs returns active installments ordered by sequence.
func (r *installmentRepo) GetByOrderIDs(dbc dbctx.Context, orderIDs []uuid.UUID) ([]*types.OrderInstallment, error) {
	var out []*types.OrderInstallment
	if len(orderIDs) == 0 {
		return out, nil
	}
	err := dbc.DB(r.db).
		Scopes(active("order_installments")).
		Where("order_installments.order_id IN ?", orderIDs).
		Order("order_installments.order_id ASC").
		Order("order_installments.sequence ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUnpaid applies updates only while the installment is unpaid. It
// reports false when the row was paid (or gone) by the time of the write.
func (r *installmentRepo) UpdateUnpaid(dbc dbctx.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	if len(updates) == 0 {
		return true, nil
	}
	res := dbc.DB(r.db).
		Model(&types.OrderInstallment{}).
		Scopes(active("order_installments")).
		Where("id = ? AND paid_at IS NULL", id).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *installmentRepo) MarkPaid(dbc dbctx.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	return r.UpdateUnpaid(dbc, id, map[string]any{"paid_at": paidAt.UTC()})
}

func (r *installmentRepo) SumPaid(dbc dbctx.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := dbc.DB(r.db).
		Model(&types.OrderInstallment{}).
		Scopes(active("order_installments")).
		Where("order_id = ? AND paid_at IS NOT NULL", orderID).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return money(sum), nil
}

func (r *installmentRepo) CountUnpaid(dbc dbctx.Context, orderID uuid.UUID) (int64, error) {
	var n int64
	err := dbc.DB(r.db).
		Model(&types.OrderInstallment{}).
		Scopes(active("order_installments")).
		Where("order_id = ? AND paid_at IS NULL", orderID).
		Count(&n).Error
	return n, err
}

func (r *installmentRepo) CountPaid(dbc dbctx.Context, orderID uuid.UUID) (int64, error) {
	var n int64
	err := dbc.DB(r.db).
		Model(&types.OrderInstallment{}).
		Scopes(active("order_installments")).
		Where("order_id = ? AND paid_at IS NOT NULL", orderID).
		Count(&n).Error
	return n, err
}

func (r *installmentRepo) ArchiveByOrder(dbc dbctx.Context, orderID uuid.UUID) error {
	return dbc.DB(r.db).
		Model(&types.OrderInstallment{}).
		Where("order_id = ?", orderID).
		Updates(archiveUpdates()).Error
}

// CountOverdueUnpaid spans every tenant.
func (r *installmentRepo) CountOverdueUnpaid(dbc dbctx.Context, now time.Time) (int64, error) {
	var n int64
	err := dbc.DB(r.db).
		Model(&types.OrderInstallment{}).
		Scopes(active("order_installments")).
		Joins("JOIN orders ON orders.id = order_installments.order_id AND orders.lifecycle = ?", types.LifecycleActive).
		Where("order_installments.paid_at IS NULL AND order_installments.due_date < ?", now.UTC()).
		Count(&n).Error
	return n, err
}
