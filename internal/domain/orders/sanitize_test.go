package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hydratedOrder(u1, u2 uuid.UUID) *Order {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	i1 := &OrderItem{ID: uuid.New(), Price: dec("120"), ItemStatus: ItemPending}
	i1.Responsibilities = []*OrderItemResponsibility{{ID: uuid.New(), UserID: u1, Amount: dec("30")}}
	i2 := &OrderItem{ID: uuid.New(), Price: dec("60"), ItemStatus: ItemInProgress}
	i2.Responsibilities = []*OrderItemResponsibility{{ID: uuid.New(), UserID: u2, Amount: dec("15")}}
	paid := now
	return &Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-20240110-0001",
		ContractDate:  now,
		AmountTotal:   dec("180"),
		AmountPaid:    dec("60"),
		PaymentStatus: PaymentPartiallyPaid,
		Items:         []*OrderItem{i1, i2},
		Installments: []*OrderInstallment{
			{ID: uuid.New(), Sequence: 1, Amount: dec("60"), DueDate: now, PaidAt: &paid},
			{ID: uuid.New(), Sequence: 2, Amount: dec("120"), DueDate: now.AddDate(0, 0, 30)},
		},
	}
}

func TestSanitize_RestrictsToViewer(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	view := BuildView(hydratedOrder(u1, u2), Names{Users: map[uuid.UUID]string{u1: "Ana"}})

	out, ok, err := Sanitize(view, &u1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, out.Items, 1)
	assert.True(t, out.AmountTotal.IsZero())
	assert.True(t, out.AmountPaid.IsZero())
	assert.NotNil(t, out.Installments)
	assert.Empty(t, out.Installments)
	assert.True(t, out.Items[0].Price.IsZero())
	require.NotNil(t, out.Items[0].Responsible)
	assert.Equal(t, u1, out.Items[0].Responsible.UserID)
	assert.Equal(t, "Ana", out.Items[0].Responsible.Name)
	assert.True(t, out.Items[0].Responsible.Amount.Equal(dec("30")))

	// input untouched
	assert.Len(t, view.Items, 2)
	assert.True(t, view.AmountTotal.Equal(dec("180")))
	assert.Len(t, view.Installments, 2)
}

func TestSanitize_Idempotent(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	view := BuildView(hydratedOrder(u1, u2), Names{})

	once, ok, err := Sanitize(view, &u2)
	require.NoError(t, err)
	require.True(t, ok)
	twice, ok, err := Sanitize(once, &u2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, once, twice)
}

func TestSanitize_NoAssignmentsIsNotFound(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	view := BuildView(hydratedOrder(u1, u2), Names{})
	stranger := uuid.New()

	out, ok, err := Sanitize(view, &stranger)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.Items)
}

func TestSanitize_DropsOtherCollaboratorsOnSharedItem(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	o := hydratedOrder(u1, u2)
	o.Items[0].Responsibilities = append(o.Items[0].Responsibilities,
		&OrderItemResponsibility{ID: uuid.New(), UserID: u2, Amount: dec("99")})

	out, ok, err := Sanitize(BuildView(o, Names{}), &u2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, out.Items, 2)
	for _, it := range out.Items {
		require.Len(t, it.Responsibilities, 1)
		assert.Equal(t, u2, it.Responsibilities[0].UserID)
		assert.Equal(t, u2, it.Responsible.UserID)
	}
	assert.True(t, out.Items[0].Responsible.Amount.Equal(dec("99")))
}

func TestSanitize_NilViewerReturnsCopy(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	view := BuildView(hydratedOrder(u1, u2), Names{})

	out, ok, err := Sanitize(view, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, view, out)
	out.Items[0].Price = dec("1")
	assert.True(t, view.Items[0].Price.Equal(dec("120")))
}

func TestSanitize_RefusesUnhydrated(t *testing.T) {
	uid := uuid.New()
	_, ok, err := Sanitize(OrderView{ID: uuid.New()}, &uid)
	assert.ErrorIs(t, err, ErrNotHydrated)
	assert.False(t, ok)
}
