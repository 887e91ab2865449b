package registry

import (
	"github.com/google/uuid"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	types "github.com/yungbote/orderbridge-backend/internal/domain/registry"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// NameRepo resolves display names for a tenant's registry rows.
type NameRepo interface {
	ClientNames(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)
	FunctionalityNames(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)
	UserNames(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// StatsRepo serves the cross-tenant admin counters.
type StatsRepo interface {
	CountActiveTenants(dbc dbctx.Context) (int64, error)
	CountActiveUsers(dbc dbctx.Context) (int64, error)
}

type registryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNameRepo(db *gorm.DB, baseLog *logger.Logger) NameRepo {
	return &registryRepo{db: db, log: baseLog.With("repo", "RegistryNameRepo")}
}

func NewStatsRepo(db *gorm.DB, baseLog *logger.Logger) StatsRepo {
	return &registryRepo{db: db, log: baseLog.With("repo", "RegistryStatsRepo")}
}

type nameRow struct {
	ID   uuid.UUID
	Name string
}

func (r *registryRepo) names(q *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []nameRow
	if err := q.Where("id IN ?", ids).Select("id", "name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}

// Archived clients and functionalities still resolve so historical orders keep their labels.
func (r *registryRepo) ClientNames(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.names(dbc.DB(r.db).Model(&types.Client{}).Where("tenant_id = ?", tenantID), ids)
}

func (r *registryRepo) FunctionalityNames(dbc dbctx.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.names(dbc.DB(r.db).Model(&types.Functionality{}).Where("tenant_id = ?", tenantID), ids)
}

func (r *registryRepo) UserNames(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.names(dbc.DB(r.db).Model(&types.User{}), ids)
}

func (r *registryRepo) CountActiveTenants(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).
		Model(&types.Tenant{}).
		Where("lifecycle = ?", orders.LifecycleActive).
		Count(&n).Error
	return n, err
}

func (r *registryRepo) CountActiveUsers(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).
		Model(&types.User{}).
		Where("lifecycle = ? AND active = ?", orders.LifecycleActive, true).
		Count(&n).Error
	return n, err
}
