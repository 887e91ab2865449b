package aggregates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/orderbridge-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/orderbridge-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/orderbridge-backend/internal/data/repos"
	"github.com/yungbote/orderbridge-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
)

type orderFixture struct {
	ctx   context.Context
	db    *gorm.DB
	hooks *aggtest.HooksRecorder
	deps  aggregates.OrderAggregateDeps
	agg   domainagg.OrderAggregate

	tenantID uuid.UUID
	clientID uuid.UUID
	funcID   uuid.UUID
	userID   uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	tenant := testutil.SeedTenant(t, ctx, db, "acme")
	client := testutil.SeedClient(t, ctx, db, tenant.ID, "Client A")
	fn := testutil.SeedFunctionality(t, ctx, db, tenant.ID, "Audit")
	user := testutil.SeedUser(t, ctx, db, tenant.ID, "Collab", "COLLABORATOR")

	hooks := &aggtest.HooksRecorder{}
	deps := aggregates.OrderAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: hooks,
			Clock: func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
		},
		Orders:           repos.NewOrderRepo(db, log),
		Items:            repos.NewOrderItemRepo(db, log),
		Responsibilities: repos.NewResponsibilityRepo(db, log),
		Installments:     repos.NewInstallmentRepo(db, log),
		Activities:       repos.NewOrderActivityRepo(db, log),
	}
	return &orderFixture{
		ctx:      ctx,
		db:       db,
		hooks:    hooks,
		deps:     deps,
		agg:      aggregates.NewOrderAggregate(deps),
		tenantID: tenant.ID,
		clientID: client.ID,
		funcID:   fn.ID,
		userID:   user.ID,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, dec(want).StringFixed(2), got.StringFixed(2))
}

func (f *orderFixture) item(price string) domainagg.ItemInput {
	return domainagg.ItemInput{FunctionalityID: f.funcID, Price: dec(price)}
}

func (f *orderFixture) create(t *testing.T, prices []string, installments ...string) domainagg.CreateOrderResult {
	t.Helper()
	in := domainagg.CreateOrderInput{
		TenantID:     f.tenantID.String(),
		ClientID:     f.clientID,
		ContractDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, p := range prices {
		in.Items = append(in.Items, f.item(p))
	}
	for i, amt := range installments {
		in.Installments = append(in.Installments, domainagg.InstallmentInput{
			Amount:  dec(amt),
			DueDate: orders.DueDate(in.ContractDate, i),
		})
	}
	res, err := f.agg.Create(f.ctx, in)
	require.NoError(t, err)
	return res
}

func (f *orderFixture) order(t *testing.T, id uuid.UUID) *orders.Order {
	t.Helper()
	o, err := f.deps.Orders.GetByID(dbctx.New(f.ctx), f.tenantID, id)
	require.NoError(t, err)
	return o
}

func (f *orderFixture) installments(t *testing.T, orderID uuid.UUID) []*orders.OrderInstallment {
	t.Helper()
	insts, err := f.deps.Installments.GetByOrderIDs(dbctx.New(f.ctx), []uuid.UUID{orderID})
	require.NoError(t, err)
	return insts
}

func (f *orderFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func warningCodes(ws []orders.Warning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

func TestOrderAggregate_CreateSumsItemsAndNumbersOrder(t *testing.T) {
	f := newOrderFixture(t)
	deadline := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	res, err := f.agg.Create(f.ctx, domainagg.CreateOrderInput{
		TenantID:     f.tenantID.String(),
		ClientID:     f.clientID,
		ContractDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Items: []domainagg.ItemInput{
			f.item("100"),
			{
				FunctionalityID: f.funcID,
				Price:           dec("80.50"),
				ClientDeadline:  &deadline,
				Responsible:     &domainagg.ResponsibilityInput{UserID: f.userID, Amount: dec("30")},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-20240115-0001", res.OrderNumber)
	assertMoney(t, "180.50", res.AmountTotal)
	assert.Empty(t, res.Warnings)

	o := f.order(t, res.OrderID)
	require.NotNil(t, o)
	assertMoney(t, "180.50", o.AmountTotal)
	assert.Equal(t, orders.PaymentPending, o.PaymentStatus)
	assert.Equal(t, 1, o.Version)

	items, err := f.deps.Items.GetByOrderIDs(dbctx.New(f.ctx), []uuid.UUID{o.ID})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), f.count(t, &orders.OrderItemResponsibility{}))

	acts, err := f.deps.Activities.ListByOrder(dbctx.New(f.ctx), f.tenantID, o.ID)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, orders.ActivityCreated, acts[0].Action)
	assert.Equal(t, []string{"success"}, f.hooks.Statuses("orders.create"))
}

func TestOrderAggregate_CreateStoresInstallmentsAsGiven(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"100"}, "50", "40")
	assert.Equal(t, []string{orders.WarnSumMismatch}, warningCodes(res.Warnings))

	insts := f.installments(t, res.OrderID)
	require.Len(t, insts, 2)
	assert.Equal(t, 1, insts[0].Sequence)
	assertMoney(t, "50", insts[0].Amount)
	assert.Equal(t, 2, insts[1].Sequence)
	assertMoney(t, "40", insts[1].Amount)
}

func TestOrderAggregate_CreateValidatesBeforeWriting(t *testing.T) {
	f := newOrderFixture(t)
	cases := map[string]domainagg.CreateOrderInput{
		"bad tenant": {TenantID: "not-a-uuid", ClientID: f.clientID, ContractDate: time.Now(), Items: []domainagg.ItemInput{f.item("1")}},
		"no items":   {TenantID: f.tenantID.String(), ClientID: f.clientID, ContractDate: time.Now()},
		"negative":   {TenantID: f.tenantID.String(), ClientID: f.clientID, ContractDate: time.Now(), Items: []domainagg.ItemInput{f.item("-1")}},
		"six installments": {
			TenantID: f.tenantID.String(), ClientID: f.clientID, ContractDate: time.Now(),
			Items:        []domainagg.ItemInput{f.item("60")},
			Installments: make([]domainagg.InstallmentInput, 6),
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.agg.Create(f.ctx, in)
			assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "got %v", err)
		})
	}
	assert.Zero(t, f.count(t, &orders.Order{}))
}

type failingItemRepo struct {
	repos.OrderItemRepo
	failAfter int
	calls     int
}

func (r *failingItemRepo) Create(dbc dbctx.Context, items []*orders.OrderItem) ([]*orders.OrderItem, error) {
	r.calls++
	if r.calls > r.failAfter {
		return nil, errors.New("insert order_items: connection reset")
	}
	return r.OrderItemRepo.Create(dbc, items)
}

func TestOrderAggregate_CreateRollsBackOnItemFailure(t *testing.T) {
	f := newOrderFixture(t)
	deps := f.deps
	deps.Items = &failingItemRepo{OrderItemRepo: f.deps.Items, failAfter: 1}
	agg := aggregates.NewOrderAggregate(deps)

	_, err := agg.Create(f.ctx, domainagg.CreateOrderInput{
		TenantID:     f.tenantID.String(),
		ClientID:     f.clientID,
		ContractDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Items:        []domainagg.ItemInput{f.item("10"), f.item("20")},
	})
	require.Error(t, err)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeInternal))
	assert.Equal(t, "internal error", domainagg.PublicMessage(err))

	assert.Zero(t, f.count(t, &orders.Order{}))
	assert.Zero(t, f.count(t, &orders.OrderItem{}))
	assert.Zero(t, f.count(t, &orders.OrderActivity{}))
}

func TestOrderAggregate_InjectedCommitFailureLeavesNoRows(t *testing.T) {
	f := newOrderFixture(t)
	deps := f.deps
	deps.Base.Runner = &aggtest.InjectedTxRunner{DB: f.db, FailCommit: aggregates.RetryableError("commit aborted")}
	agg := aggregates.NewOrderAggregate(deps)

	_, err := agg.Create(f.ctx, domainagg.CreateOrderInput{
		TenantID:     f.tenantID.String(),
		ClientID:     f.clientID,
		ContractDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Items:        []domainagg.ItemInput{f.item("10")},
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeRetryable))
	assert.Zero(t, f.count(t, &orders.Order{}))
	assert.Equal(t, []string{"orders.create"}, f.hooks.Retries)
}

func TestOrderAggregate_OrderNumberCountsArchivedOrders(t *testing.T) {
	f := newOrderFixture(t)
	old := testutil.SeedOrder(t, f.ctx, f.db, f.tenantID, f.clientID, "ORD-20231201-0001", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), "10")
	require.NoError(t, f.deps.Orders.Archive(dbctx.New(f.ctx), f.tenantID, old.ID))

	res := f.create(t, []string{"10"})
	assert.Equal(t, "ORD-20240115-0002", res.OrderNumber)
}

func TestOrderAggregate_AddAndRemoveItemResumTotal(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"100"}, "100")

	added, err := f.agg.AddItem(f.ctx, domainagg.AddItemInput{
		TenantID: f.tenantID.String(),
		OrderID:  res.OrderID,
		Item: domainagg.ItemInput{
			FunctionalityID: f.funcID,
			Price:           dec("50.25"),
			Responsible:     &domainagg.ResponsibilityInput{UserID: f.userID, Amount: dec("20")},
		},
	})
	require.NoError(t, err)
	assertMoney(t, "150.25", added.AmountTotal)
	assert.Equal(t, 2, added.Version)
	assert.Equal(t, []string{orders.WarnSumMismatch}, warningCodes(added.Warnings))

	removed, err := f.agg.RemoveItem(f.ctx, domainagg.RemoveItemInput{
		TenantID: f.tenantID.String(),
		OrderID:  res.OrderID,
		ItemID:   added.ItemID,
	})
	require.NoError(t, err)
	assertMoney(t, "100", removed.AmountTotal)
	assert.Equal(t, 3, removed.Version)
	assert.Empty(t, removed.Warnings)

	o := f.order(t, res.OrderID)
	assertMoney(t, "100", o.AmountTotal)

	resp, err := f.deps.Responsibilities.GetByItemIDs(dbctx.New(f.ctx), []uuid.UUID{added.ItemID})
	require.NoError(t, err)
	assert.Empty(t, resp)

	_, err = f.agg.RemoveItem(f.ctx, domainagg.RemoveItemInput{
		TenantID: f.tenantID.String(),
		OrderID:  res.OrderID,
		ItemID:   added.ItemID,
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))
}

type staleOrderRepo struct {
	repos.OrderRepo
}

func (r staleOrderRepo) GetByID(dbc dbctx.Context, tenantID, id uuid.UUID) (*orders.Order, error) {
	o, err := r.OrderRepo.GetByID(dbc, tenantID, id)
	if o != nil {
		o.Version--
	}
	return o, err
}

func TestOrderAggregate_StaleVersionIsConflict(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"100"})

	deps := f.deps
	deps.Orders = staleOrderRepo{OrderRepo: f.deps.Orders}
	agg := aggregates.NewOrderAggregate(deps)

	_, err := agg.AddItem(f.ctx, domainagg.AddItemInput{
		TenantID: f.tenantID.String(),
		OrderID:  res.OrderID,
		Item:     f.item("5"),
	})
	require.Error(t, err)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeConflict))
	assert.Equal(t, []string{"orders.add_item"}, f.hooks.Conflicts)

	// the inserted item was rolled back with the failed write
	items, err := f.deps.Items.GetByOrderIDs(dbctx.New(f.ctx), []uuid.UUID{res.OrderID})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assertMoney(t, "100", f.order(t, res.OrderID).AmountTotal)
}

func TestOrderAggregate_OtherTenantIsNotFound(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"100"})
	other := testutil.SeedTenant(t, f.ctx, f.db, "other")

	_, err := f.agg.AddItem(f.ctx, domainagg.AddItemInput{
		TenantID: other.ID.String(),
		OrderID:  res.OrderID,
		Item:     f.item("5"),
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))
	assert.Equal(t, "order not found", domainagg.PublicMessage(err))
}

func TestOrderAggregate_RedistributeFollowingInstallments(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"180"}, "60", "60", "60")
	insts := f.installments(t, res.OrderID)

	forty := dec("40")
	out, err := f.agg.UpdateUnpaidInstallments(f.ctx, domainagg.UpdateInstallmentsInput{
		TenantID:     f.tenantID.String(),
		OrderID:      res.OrderID,
		Redistribute: true,
		Edits:        []domainagg.InstallmentEdit{{InstallmentID: insts[0].ID, Amount: &forty}},
	})
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
	assert.Len(t, out.Updated, 3)

	insts = f.installments(t, res.OrderID)
	assertMoney(t, "40", insts[0].Amount)
	assertMoney(t, "70", insts[1].Amount)
	assertMoney(t, "70", insts[2].Amount)
}

func TestOrderAggregate_OverAllocationIsAWarning(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"180"}, "60", "60", "60")
	insts := f.installments(t, res.OrderID)

	big := dec("200")
	out, err := f.agg.UpdateUnpaidInstallments(f.ctx, domainagg.UpdateInstallmentsInput{
		TenantID:     f.tenantID.String(),
		OrderID:      res.OrderID,
		Redistribute: true,
		Edits:        []domainagg.InstallmentEdit{{InstallmentID: insts[0].ID, Amount: &big}},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{orders.WarnOverAllocated, orders.WarnSumMismatch}, warningCodes(out.Warnings))

	insts = f.installments(t, res.OrderID)
	assertMoney(t, "200", insts[0].Amount)
	assertMoney(t, "0", insts[1].Amount)
	assertMoney(t, "0", insts[2].Amount)
}

func TestOrderAggregate_PaidInstallmentsAreImmutable(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"180"}, "60", "60", "60")
	insts := f.installments(t, res.OrderID)

	_, err := f.agg.PayInstallment(f.ctx, domainagg.PayInstallmentInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, InstallmentID: insts[2].ID, PaidAt: "2024-02-01",
	})
	require.NoError(t, err)

	ten := dec("10")
	channel := "pix"
	out, err := f.agg.UpdateUnpaidInstallments(f.ctx, domainagg.UpdateInstallmentsInput{
		TenantID: f.tenantID.String(),
		OrderID:  res.OrderID,
		Edits: []domainagg.InstallmentEdit{
			{InstallmentID: insts[2].ID, Amount: &ten},
			{InstallmentID: insts[1].ID, Channel: &channel},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{insts[2].ID}, out.SkippedPaid)
	assert.Equal(t, []uuid.UUID{insts[1].ID}, out.Updated)

	after := f.installments(t, res.OrderID)
	assertMoney(t, "60", after[2].Amount)
	assert.Equal(t, "pix", after[1].Channel)

	_, err = f.agg.UpdateUnpaidInstallments(f.ctx, domainagg.UpdateInstallmentsInput{
		TenantID:     f.tenantID.String(),
		OrderID:      res.OrderID,
		Redistribute: true,
		Edits:        []domainagg.InstallmentEdit{{InstallmentID: insts[0].ID, Amount: &ten}},
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation))
}

func TestOrderAggregate_PayInstallmentDrivesPaymentStatus(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"100"}, "40", "60")
	insts := f.installments(t, res.OrderID)

	for _, raw := range []string{"", "yesterday", "01/02/2024"} {
		_, err := f.agg.PayInstallment(f.ctx, domainagg.PayInstallmentInput{
			TenantID: f.tenantID.String(), OrderID: res.OrderID, InstallmentID: insts[0].ID, PaidAt: raw,
		})
		assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation), raw)
	}

	first, err := f.agg.PayInstallment(f.ctx, domainagg.PayInstallmentInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, InstallmentID: insts[0].ID, PaidAt: "2024-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, orders.PaymentPartiallyPaid, first.PaymentStatus)
	assertMoney(t, "40", first.AmountPaid)

	_, err = f.agg.PayInstallment(f.ctx, domainagg.PayInstallmentInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, InstallmentID: insts[0].ID, PaidAt: "2024-02-02",
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeConflict))

	second, err := f.agg.PayInstallment(f.ctx, domainagg.PayInstallmentInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, InstallmentID: insts[1].ID, PaidAt: "2024-03-01T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, orders.PaymentPaid, second.PaymentStatus)

	o := f.order(t, res.OrderID)
	assert.Equal(t, orders.PaymentPaid, o.PaymentStatus)
	assertMoney(t, "100", o.AmountPaid)
}

func TestOrderAggregate_UpdateItemStatus(t *testing.T) {
	f := newOrderFixture(t)
	res, err := f.agg.Create(f.ctx, domainagg.CreateOrderInput{
		TenantID:     f.tenantID.String(),
		ClientID:     f.clientID,
		ContractDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Items: []domainagg.ItemInput{
			{FunctionalityID: f.funcID, Price: dec("10"), Responsible: &domainagg.ResponsibilityInput{UserID: f.userID, Amount: dec("5")}},
			f.item("20"),
		},
	})
	require.NoError(t, err)
	items, err := f.deps.Items.GetByOrderIDs(dbctx.New(f.ctx), []uuid.UUID{res.OrderID})
	require.NoError(t, err)
	require.Len(t, items, 2)
	mine, others := items[0], items[1]
	if mine.Price.GreaterThan(others.Price) {
		mine, others = others, mine
	}

	err = f.agg.UpdateItemStatus(f.ctx, domainagg.UpdateItemStatusInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, ItemID: mine.ID, Status: "DONE-ISH",
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation))

	err = f.agg.UpdateItemStatus(f.ctx, domainagg.UpdateItemStatusInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, ItemID: others.ID,
		Status: orders.ItemFinished, RestrictToUserID: &f.userID,
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))

	err = f.agg.UpdateItemStatus(f.ctx, domainagg.UpdateItemStatusInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, ItemID: mine.ID,
		Status: orders.ItemDelivered, RestrictToUserID: &f.userID,
	})
	require.NoError(t, err)

	got, err := f.deps.Items.GetByID(dbctx.New(f.ctx), f.tenantID, res.OrderID, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, orders.ItemDelivered, got.ItemStatus)
}

func TestOrderAggregate_PlanInstallments(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"100"}, "100")
	base := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	out, err := f.agg.PlanInstallments(f.ctx, domainagg.PlanInstallmentsInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, Count: 3, BaseDate: base,
	})
	require.NoError(t, err)
	require.Len(t, out.InstallmentIDs, 3)

	insts := f.installments(t, res.OrderID)
	require.Len(t, insts, 3)
	assertMoney(t, "33.33", insts[0].Amount)
	assertMoney(t, "33.33", insts[1].Amount)
	assertMoney(t, "33.34", insts[2].Amount)
	assert.True(t, insts[2].DueDate.Equal(base.AddDate(0, 0, 60)))

	_, err = f.agg.PlanInstallments(f.ctx, domainagg.PlanInstallmentsInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, Count: 6, BaseDate: base,
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation))

	_, err = f.agg.PayInstallment(f.ctx, domainagg.PayInstallmentInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, InstallmentID: insts[0].ID, PaidAt: "2024-02-01",
	})
	require.NoError(t, err)
	_, err = f.agg.PlanInstallments(f.ctx, domainagg.PlanInstallmentsInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, Count: 2, BaseDate: base,
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodePreconditionFailed))
}

func TestOrderAggregate_ArchiveOrderHidesEverything(t *testing.T) {
	f := newOrderFixture(t)
	res := f.create(t, []string{"100"}, "100")

	require.NoError(t, f.agg.ArchiveOrder(f.ctx, domainagg.ArchiveOrderInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID,
	}))
	assert.Nil(t, f.order(t, res.OrderID))
	assert.Empty(t, f.installments(t, res.OrderID))

	_, err := f.agg.AddItem(f.ctx, domainagg.AddItemInput{
		TenantID: f.tenantID.String(), OrderID: res.OrderID, Item: f.item("1"),
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))
}
