package orders

import (
	"github.com/google/uuid"
	types "github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ActivityRepo interface {
	Create(dbc dbctx.Context, a *types.OrderActivity) error
	ListByOrder(dbc dbctx.Context, tenantID, orderID uuid.UUID) ([]*types.OrderActivity, error)
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return &activityRepo{
		db:  db,
		log: baseLog.With("repo", "OrderActivityRepo"),
	}
}

func (r *activityRepo) Create(dbc dbctx.Context, a *types.OrderActivity) error {
	return dbc.DB(r.db).Create(a).Error
}

func (r *activityRepo) ListByOrder(dbc dbctx.Context, tenantID, orderID uuid.UUID) ([]*types.OrderActivity, error) {
	var out []*types.OrderActivity
	err := dbc.DB(r.db).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
