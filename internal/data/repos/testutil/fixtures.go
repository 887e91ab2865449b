package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/domain/registry"
	"gorm.io/gorm"
)

func SeedTenant(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *registry.Tenant {
	tb.Helper()
	t := &registry.Tenant{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed tenant: %v", err)
	}
	return t
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, name, role string) *registry.User {
	tb.Helper()
	tid := tenantID
	u := &registry.User{ID: uuid.New(), TenantID: &tid, Name: name, Role: role, Active: true}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, name string) *registry.Client {
	tb.Helper()
	c := &registry.Client{ID: uuid.New(), TenantID: tenantID, Name: name}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed client: %v", err)
	}
	return c
}

func SeedFunctionality(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, name string) *registry.Functionality {
	tb.Helper()
	f := &registry.Functionality{ID: uuid.New(), TenantID: tenantID, Name: name}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed functionality: %v", err)
	}
	return f
}

// SeedOrder inserts an order row directly, bypassing the aggregate.
func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID, clientID uuid.UUID, number string, contractDate time.Time, total string) *orders.Order {
	tb.Helper()
	o := &orders.Order{
		ID:           uuid.New(),
		TenantID:     tenantID,
		ClientID:     clientID,
		OrderNumber:  number,
		ContractDate: contractDate.UTC(),
		AmountTotal:  decimal.RequireFromString(total),
		AmountPaid:   decimal.Zero,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return o
}

func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, o *orders.Order, functionalityID uuid.UUID, price string, deadline *time.Time) *orders.OrderItem {
	tb.Helper()
	it := &orders.OrderItem{
		ID:              uuid.New(),
		OrderID:         o.ID,
		TenantID:        o.TenantID,
		ClientID:        o.ClientID,
		FunctionalityID: functionalityID,
		Price:           decimal.RequireFromString(price),
		ClientDeadline:  deadline,
	}
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return it
}

func SeedResponsibility(tb testing.TB, ctx context.Context, tx *gorm.DB, it *orders.OrderItem, userID uuid.UUID, amount string) *orders.OrderItemResponsibility {
	tb.Helper()
	r := &orders.OrderItemResponsibility{
		ID:              uuid.New(),
		OrderItemID:     it.ID,
		TenantID:        it.TenantID,
		UserID:          userID,
		FunctionalityID: it.FunctionalityID,
		Amount:          decimal.RequireFromString(amount),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed responsibility: %v", err)
	}
	return r
}

func SeedInstallment(tb testing.TB, ctx context.Context, tx *gorm.DB, o *orders.Order, seq int, amount string, due time.Time, paidAt *time.Time) *orders.OrderInstallment {
	tb.Helper()
	inst := &orders.OrderInstallment{
		ID:       uuid.New(),
		OrderID:  o.ID,
		TenantID: o.TenantID,
		Sequence: seq,
		Amount:   decimal.RequireFromString(amount),
		DueDate:  due.UTC(),
		PaidAt:   paidAt,
	}
	if err := tx.WithContext(ctx).Create(inst).Error; err != nil {
		tb.Fatalf("seed installment: %v", err)
	}
	return inst
}
