package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/orderbridge-backend/internal/data/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/data/repos"
	"github.com/yungbote/orderbridge-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/domain/auth"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// memoryCache mirrors the generation scheme of the Redis cache.
type memoryCache struct {
	mu      sync.Mutex
	gens    map[uuid.UUID]int64
	entries map[string]DashboardSummary
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{gens: map[uuid.UUID]int64{}, entries: map[string]DashboardSummary{}}
}

func (c *memoryCache) Get(_ context.Context, tenantID uuid.UUID, viewer *uuid.UUID) (*DashboardSummary, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.gens[tenantID]
	s, ok := c.entries[summaryKey(tenantID, gen, viewer)]
	if !ok {
		return nil, gen, false
	}
	c.hits++
	return &s, gen, true
}

func (c *memoryCache) Set(_ context.Context, tenantID uuid.UUID, gen int64, viewer *uuid.UUID, s DashboardSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[summaryKey(tenantID, gen, viewer)] = s
}

func (c *memoryCache) Invalidate(_ context.Context, tenantID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[tenantID]++
}

// invalidatingOrders simulates a write committing while a summary is computed.
type invalidatingOrders struct {
	repos.OrderRepo
	cache  DashboardCache
	tenant uuid.UUID
	once   sync.Once
}

func (r *invalidatingOrders) SumAmountTotal(dbc dbctx.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	r.once.Do(func() { r.cache.Invalidate(dbc.Ctx, r.tenant) })
	return r.OrderRepo.SumAmountTotal(dbc, tenantID)
}

type svcFixture struct {
	ctx   context.Context
	db    *gorm.DB
	cache *memoryCache
	query OrderQueryService
	dash  DashboardService
	svc   OrderService

	tenantID uuid.UUID
	clientID uuid.UUID
	funcID   uuid.UUID
	collabID uuid.UUID
	otherID  uuid.UUID

	owner  auth.Principal
	collab auth.Principal

	orderA uuid.UUID // items for collab and other, one installment
	orderB uuid.UUID // one unassigned item
}

func newSvcFixture(t *testing.T) *svcFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	tenant := testutil.SeedTenant(t, ctx, db, "acme")
	client := testutil.SeedClient(t, ctx, db, tenant.ID, "Client A")
	fn := testutil.SeedFunctionality(t, ctx, db, tenant.ID, "Audit")
	owner := testutil.SeedUser(t, ctx, db, tenant.ID, "Olga", string(auth.RoleOwner))
	collab := testutil.SeedUser(t, ctx, db, tenant.ID, "Caio", string(auth.RoleCollaborator))
	other := testutil.SeedUser(t, ctx, db, tenant.ID, "Otto", string(auth.RoleCollaborator))

	orderRepo := repos.NewOrderRepo(db, log)
	itemRepo := repos.NewOrderItemRepo(db, log)
	respRepo := repos.NewResponsibilityRepo(db, log)
	instRepo := repos.NewInstallmentRepo(db, log)

	agg := aggregates.NewOrderAggregate(aggregates.OrderAggregateDeps{
		Base:             aggregates.BaseDeps{DB: db, Log: log, Clock: func() time.Time { return fixedNow }},
		Orders:           orderRepo,
		Items:            itemRepo,
		Responsibilities: respRepo,
		Installments:     instRepo,
		Activities:       repos.NewOrderActivityRepo(db, log),
	})
	query := NewOrderQueryService(log, OrderQueryDeps{
		Orders:             orderRepo,
		Items:              itemRepo,
		Responsibilities:   respRepo,
		Installments:       instRepo,
		Names:              repos.NewRegistryNameRepo(db, log),
		HydrateConcurrency: 2,
	})
	cache := newMemoryCache()
	dash := NewDashboardService(log, DashboardDeps{
		Orders:           orderRepo,
		Items:            itemRepo,
		Responsibilities: respRepo,
		Installments:     instRepo,
		Stats:            repos.NewRegistryStatsRepo(db, log),
		Cache:            cache,
		Clock:            func() time.Time { return fixedNow },
	})

	f := &svcFixture{
		ctx:      ctx,
		db:       db,
		cache:    cache,
		query:    query,
		dash:     dash,
		svc:      NewOrderService(log, agg, query, dash),
		tenantID: tenant.ID,
		clientID: client.ID,
		funcID:   fn.ID,
		collabID: collab.ID,
		otherID:  other.ID,
		owner:    auth.Principal{UserID: owner.ID, TenantID: tenant.ID, Role: auth.RoleOwner},
		collab:   auth.Principal{UserID: collab.ID, TenantID: tenant.ID, Role: auth.RoleCollaborator},
	}

	pastDeadline := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	resA, err := f.svc.Create(ctx, f.owner, domainagg.CreateOrderInput{
		ClientID:     client.ID,
		ContractDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Items: []domainagg.ItemInput{
			{
				FunctionalityID: fn.ID,
				Price:           decimal.RequireFromString("100"),
				ClientDeadline:  &pastDeadline,
				Responsible:     &domainagg.ResponsibilityInput{UserID: collab.ID, Amount: decimal.RequireFromString("30")},
			},
			{
				FunctionalityID: fn.ID,
				Price:           decimal.RequireFromString("50"),
				Responsible:     &domainagg.ResponsibilityInput{UserID: other.ID, Amount: decimal.RequireFromString("20")},
			},
		},
		Installments: []domainagg.InstallmentInput{
			{Amount: decimal.RequireFromString("150"), DueDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		},
	})
	require.NoError(t, err)
	f.orderA = resA.Order.ID

	resB, err := f.svc.Create(ctx, f.owner, domainagg.CreateOrderInput{
		ClientID:     client.ID,
		ContractDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Items:        []domainagg.ItemInput{{FunctionalityID: fn.ID, Price: decimal.RequireFromString("200")}},
	})
	require.NoError(t, err)
	f.orderB = resB.Order.ID
	return f
}

func money(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, decimal.RequireFromString(want).StringFixed(2), got.StringFixed(2))
}

func TestOrderQuery_FindOneForOwnerIsComplete(t *testing.T) {
	f := newSvcFixture(t)
	v, err := f.query.FindOne(f.ctx, f.tenantID, f.orderA, nil)
	require.NoError(t, err)

	assert.Equal(t, "ORD-20240110-0001", v.OrderNumber)
	assert.Equal(t, "Client A", v.Client.Name)
	money(t, "150", v.AmountTotal)
	require.Len(t, v.Items, 2)
	require.Len(t, v.Installments, 1)
	for _, it := range v.Items {
		require.NotNil(t, it.Responsible)
		assert.Equal(t, "Audit", it.Functionality.Name)
		assert.NotEmpty(t, it.Responsible.Name)
	}
}

func TestOrderQuery_FindOneSanitizesForCollaborator(t *testing.T) {
	f := newSvcFixture(t)
	v, err := f.query.FindOne(f.ctx, f.tenantID, f.orderA, f.collab.ViewAs())
	require.NoError(t, err)

	money(t, "0", v.AmountTotal)
	money(t, "0", v.AmountPaid)
	assert.Empty(t, v.Installments)
	require.Len(t, v.Items, 1)
	money(t, "0", v.Items[0].Price)
	require.NotNil(t, v.Items[0].Responsible)
	assert.Equal(t, f.collabID, v.Items[0].Responsible.UserID)
	assert.Equal(t, "Caio", v.Items[0].Responsible.Name)
	money(t, "30", v.Items[0].Responsible.Amount)

	_, err = f.query.FindOne(f.ctx, f.tenantID, f.orderB, f.collab.ViewAs())
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))

	_, err = f.query.FindOne(f.ctx, uuid.New(), f.orderA, nil)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))
}

func TestOrderQuery_ListScopesAndSanitizes(t *testing.T) {
	f := newSvcFixture(t)

	all, err := f.query.List(f.ctx, f.tenantID, repos.OrderListFilter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	require.Len(t, all.Items, 2)
	assert.Equal(t, f.orderB, all.Items[0].ID)
	assert.Equal(t, f.orderA, all.Items[1].ID)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, repos.DefaultPageSize, all.PageSize)

	mine, err := f.query.List(f.ctx, f.tenantID, repos.OrderListFilter{}, f.collab.ViewAs())
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, f.orderA, mine.Items[0].ID)
	money(t, "0", mine.Items[0].AmountTotal)

	other := f.otherID
	none, err := f.query.List(f.ctx, f.tenantID, repos.OrderListFilter{UserID: &other}, f.collab.ViewAs())
	require.NoError(t, err)
	assert.Zero(t, none.Total)
	assert.Empty(t, none.Items)

	byResponsible, err := f.query.List(f.ctx, f.tenantID, repos.OrderListFilter{UserID: &other}, nil)
	require.NoError(t, err)
	require.Len(t, byResponsible.Items, 1)
	require.Len(t, byResponsible.Items[0].Items, 1)
	assert.Equal(t, other, byResponsible.Items[0].Items[0].Responsible.UserID)
	money(t, "0", byResponsible.Items[0].Items[0].Price)
}

func TestDashboard_SummaryForOwner(t *testing.T) {
	f := newSvcFixture(t)
	s, err := f.dash.Summary(f.ctx, f.tenantID, nil)
	require.NoError(t, err)

	money(t, "350", s.TotalRevenue)
	money(t, "50", s.TotalCost)
	money(t, "300", s.NetProfit)
	money(t, "85.71", s.Margin)
	assert.Equal(t, int64(1), s.OverdueItems)
	assert.Equal(t, []repos.StatusCount{{Status: string(orders.PaymentPending), Count: 2}}, s.ByPaymentStatus)
	assert.Equal(t, []repos.StatusCount{{Status: string(orders.WorkPending), Count: 2}}, s.ByWorkStatus)
}

func TestDashboard_SummaryIsRescopedForCollaborator(t *testing.T) {
	f := newSvcFixture(t)
	s, err := f.dash.Summary(f.ctx, f.tenantID, f.collab.ViewAs())
	require.NoError(t, err)

	money(t, "0", s.TotalRevenue)
	money(t, "30", s.TotalCost)
	money(t, "0", s.NetProfit)
	money(t, "0", s.Margin)
	assert.Equal(t, int64(1), s.OverdueItems)
	assert.Equal(t, []repos.StatusCount{{Status: string(orders.PaymentPending), Count: 1}}, s.ByPaymentStatus)
}

func TestRestrictedPrincipalWithoutUserSeesNothing(t *testing.T) {
	f := newSvcFixture(t)
	p := auth.Principal{TenantID: f.tenantID, Role: auth.RoleCollaborator}

	page, err := f.query.List(f.ctx, f.tenantID, repos.OrderListFilter{}, p.ViewAs())
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)

	_, err = f.query.FindOne(f.ctx, f.tenantID, f.orderA, p.ViewAs())
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))

	s, err := f.dash.Summary(f.ctx, f.tenantID, p.ViewAs())
	require.NoError(t, err)
	money(t, "0", s.TotalRevenue)
	money(t, "0", s.TotalCost)
	assert.Equal(t, int64(0), s.OverdueItems)
}

func TestDashboard_CacheIsInvalidatedByWrites(t *testing.T) {
	f := newSvcFixture(t)
	first, err := f.dash.Summary(f.ctx, f.tenantID, nil)
	require.NoError(t, err)
	again, err := f.dash.Summary(f.ctx, f.tenantID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits)
	money(t, first.TotalRevenue.String(), again.TotalRevenue)

	_, err = f.svc.AddItem(f.ctx, f.owner, f.orderB, domainagg.ItemInput{FunctionalityID: f.funcID, Price: decimal.RequireFromString("10")})
	require.NoError(t, err)

	after, err := f.dash.Summary(f.ctx, f.tenantID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits)
	money(t, "360", after.TotalRevenue)
}

func TestDashboard_SummaryComputedBeforeInvalidateIsNotServed(t *testing.T) {
	f := newSvcFixture(t)
	log := testutil.Logger(t)
	racing := NewDashboardService(log, DashboardDeps{
		Orders:           &invalidatingOrders{OrderRepo: repos.NewOrderRepo(f.db, log), cache: f.cache, tenant: f.tenantID},
		Items:            repos.NewOrderItemRepo(f.db, log),
		Responsibilities: repos.NewResponsibilityRepo(f.db, log),
		Installments:     repos.NewInstallmentRepo(f.db, log),
		Stats:            repos.NewRegistryStatsRepo(f.db, log),
		Cache:            f.cache,
		Clock:            func() time.Time { return fixedNow },
	})

	_, err := racing.Summary(f.ctx, f.tenantID, nil)
	require.NoError(t, err)

	// the summary was stored under the generation the lookup saw, which the
	// concurrent invalidation already retired
	_, err = racing.Summary(f.ctx, f.tenantID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, f.cache.hits)

	_, err = racing.Summary(f.ctx, f.tenantID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits)
}

func TestDashboard_AdminSummary(t *testing.T) {
	f := newSvcFixture(t)
	s, err := f.dash.AdminSummary(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Tenants)
	assert.Equal(t, int64(3), s.ActiveUsers)
	assert.Equal(t, int64(1), s.OverdueInstallments)
}

func TestOrderService_CollaboratorUpdatesOnlyOwnItems(t *testing.T) {
	f := newSvcFixture(t)
	owned, err := f.query.FindOne(f.ctx, f.tenantID, f.orderA, nil)
	require.NoError(t, err)

	var mine, theirs uuid.UUID
	for _, it := range owned.Items {
		if it.Responsible.UserID == f.collabID {
			mine = it.ID
		} else {
			theirs = it.ID
		}
	}

	res, err := f.svc.UpdateItemStatus(f.ctx, f.collab, f.orderA, mine, orders.ItemFinished)
	require.NoError(t, err)
	require.Len(t, res.Order.Items, 1)
	assert.Equal(t, orders.ItemFinished, res.Order.Items[0].ItemStatus)
	money(t, "0", res.Order.AmountTotal)

	_, err = f.svc.UpdateItemStatus(f.ctx, f.collab, f.orderA, theirs, orders.ItemFinished)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))
}

func TestOrderService_ArchiveHidesOrderEverywhere(t *testing.T) {
	f := newSvcFixture(t)
	require.NoError(t, f.svc.Archive(f.ctx, f.owner, f.orderB))

	_, err := f.query.FindOne(f.ctx, f.tenantID, f.orderB, nil)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))

	page, err := f.query.List(f.ctx, f.tenantID, repos.OrderListFilter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	s, err := f.dash.Summary(f.ctx, f.tenantID, nil)
	require.NoError(t, err)
	money(t, "150", s.TotalRevenue)
}
