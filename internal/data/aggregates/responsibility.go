package aggregates

import (
	"strings"

	"github.com/google/uuid"
	"github.com/yungbote/orderbridge-backend/internal/data/repos"
	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
)

// ResponsibilityAssigner links an item to the collaborator executing it. The
// payout ledger it writes is independent of the item's client-facing status.
type ResponsibilityAssigner struct {
	repo repos.ResponsibilityRepo
}

func NewResponsibilityAssigner(repo repos.ResponsibilityRepo) ResponsibilityAssigner {
	return ResponsibilityAssigner{repo: repo}
}

func validateResponsibility(in *domainagg.ResponsibilityInput) error {
	if in == nil {
		return nil
	}
	if in.UserID == uuid.Nil {
		return ValidationError("responsible user id is required")
	}
	if in.Amount.IsNegative() {
		return ValidationError("responsible amount must not be negative")
	}
	return nil
}

// Assign writes the responsibility for item. A nil input is a no-op.
func (a ResponsibilityAssigner) Assign(dbc dbctx.Context, item *orders.OrderItem, in *domainagg.ResponsibilityInput) (*orders.OrderItemResponsibility, error) {
	if in == nil {
		return nil, nil
	}
	if item == nil || item.ID == uuid.Nil {
		return nil, InvariantError("responsibility requires a persisted item")
	}
	if err := validateResponsibility(in); err != nil {
		return nil, err
	}
	var deadline = in.AssistantDeadline
	if deadline != nil {
		d := deadline.UTC()
		deadline = &d
	}
	row := &orders.OrderItemResponsibility{
		OrderItemID:       item.ID,
		TenantID:          item.TenantID,
		UserID:            in.UserID,
		FunctionalityID:   item.FunctionalityID,
		AssistantDeadline: deadline,
		Amount:            in.Amount.Round(2),
		Description:       strings.TrimSpace(in.Description),
	}
	if _, err := a.repo.Create(dbc, []*orders.OrderItemResponsibility{row}); err != nil {
		return nil, err
	}
	item.Responsibilities = append(item.Responsibilities, row)
	return row, nil
}
