package aggregates

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yungbote/orderbridge-backend/internal/data/repos"
	domainagg "github.com/yungbote/orderbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"github.com/yungbote/orderbridge-backend/internal/platform/dbctx"
)

const ordersTable = "orders"

type OrderAggregateDeps struct {
	Base             BaseDeps
	Orders           repos.OrderRepo
	Items            repos.OrderItemRepo
	Responsibilities repos.ResponsibilityRepo
	Installments     repos.InstallmentRepo
	Activities       repos.OrderActivityRepo
}

type orderAggregate struct {
	deps     OrderAggregateDeps
	assigner ResponsibilityAssigner
}

func NewOrderAggregate(deps OrderAggregateDeps) domainagg.OrderAggregate {
	deps.Base = deps.Base.withDefaults()
	return &orderAggregate{
		deps:     deps,
		assigner: NewResponsibilityAssigner(deps.Responsibilities),
	}
}

func (a *orderAggregate) Contract() domainagg.Contract {
	return domainagg.OrderAggregateContract
}

func (a *orderAggregate) now() time.Time {
	return a.deps.Base.Clock().UTC()
}

func parseTenantID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ValidationError("invalid tenant id")
	}
	return id, nil
}

func validateItem(in domainagg.ItemInput) error {
	if in.FunctionalityID == uuid.Nil {
		return ValidationError("item functionality id is required")
	}
	if in.Price.IsNegative() {
		return ValidationError("item price must not be negative")
	}
	if in.ItemStatus != "" && !in.ItemStatus.Valid() {
		return ValidationError("unknown item status %q", in.ItemStatus)
	}
	return validateResponsibility(in.Responsible)
}

func validateCreate(in domainagg.CreateOrderInput) error {
	if in.ClientID == uuid.Nil {
		return ValidationError("client id is required")
	}
	if in.ContractDate.IsZero() {
		return ValidationError("contract date is required")
	}
	if in.WorkStatus != "" && !in.WorkStatus.Valid() {
		return ValidationError("unknown work status %q", in.WorkStatus)
	}
	if len(in.Items) == 0 {
		return ValidationError("an order needs at least one item")
	}
	for _, it := range in.Items {
		if err := validateItem(it); err != nil {
			return err
		}
	}
	if len(in.Installments) > orders.MaxInstallments {
		return ValidationError("at most %d installments are allowed", orders.MaxInstallments)
	}
	for i, inst := range in.Installments {
		if inst.Amount.IsNegative() {
			return ValidationError("installment #%d amount must not be negative", i+1)
		}
		if inst.DueDate.IsZero() {
			return ValidationError("installment #%d due date is required", i+1)
		}
	}
	return nil
}

func (a *orderAggregate) Create(ctx context.Context, in domainagg.CreateOrderInput) (domainagg.CreateOrderResult, error) {
	const op = "orders.create"
	var out domainagg.CreateOrderResult

	tenantID, err := parseTenantID(in.TenantID)
	if err == nil {
		err = validateCreate(in)
	}
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		now := a.now()
		existing, err := a.deps.Orders.CountForTenantIncludingArchived(dbc, tenantID)
		if err != nil {
			return err
		}
		contract := in.ContractDate.UTC()
		order := &orders.Order{
			TenantID:      tenantID,
			ClientID:      in.ClientID,
			OrderNumber:   orders.FormatOrderNumber(contract, existing+1),
			ContractDate:  contract,
			AmountTotal:   decimal.Zero,
			AmountPaid:    decimal.Zero,
			PaymentMethod: strings.TrimSpace(in.PaymentMethod),
			PaymentTerms:  strings.TrimSpace(in.PaymentTerms),
			PaymentStatus: orders.PaymentPending,
			WorkStatus:    in.WorkStatus,
			HasInvoice:    in.HasInvoice,
			Description:   strings.TrimSpace(in.Description),
			Version:       1,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := a.deps.Orders.Create(dbc, order); err != nil {
			return err
		}

		total := decimal.Zero
		for _, itIn := range in.Items {
			item, err := a.insertItem(dbc, order, itIn, now)
			if err != nil {
				return err
			}
			total = total.Add(item.Price)
		}
		if err := a.deps.Orders.UpdateFields(dbc, tenantID, order.ID, map[string]any{
			"amount_total": total,
			"updated_at":   now,
		}); err != nil {
			return err
		}
		order.AmountTotal = total

		if len(in.Installments) > 0 {
			rows := make([]*orders.OrderInstallment, 0, len(in.Installments))
			amounts := make([]decimal.Decimal, 0, len(in.Installments))
			for i, inst := range in.Installments {
				amt := inst.Amount.Round(2)
				amounts = append(amounts, amt)
				rows = append(rows, &orders.OrderInstallment{
					OrderID:       order.ID,
					TenantID:      tenantID,
					Sequence:      i + 1,
					Amount:        amt,
					DueDate:       inst.DueDate.UTC(),
					Channel:       strings.TrimSpace(inst.Channel),
					PaymentMethod: strings.TrimSpace(inst.PaymentMethod),
					CreatedAt:     now,
					UpdatedAt:     now,
				})
			}
			if _, err := a.deps.Installments.Create(dbc, rows); err != nil {
				return err
			}
			out.Warnings = orders.CheckSum(amounts, total)
		}

		out.OrderID = order.ID
		out.OrderNumber = order.OrderNumber
		out.AmountTotal = total
		return a.record(dbc, order, in.ActorUserID, orders.ActivityCreated, map[string]any{
			"order_number": order.OrderNumber,
			"amount_total": total,
			"items":        len(in.Items),
			"installments": len(in.Installments),
		})
	})
	if err != nil {
		return domainagg.CreateOrderResult{}, err
	}
	return out, nil
}

func (a *orderAggregate) AddItem(ctx context.Context, in domainagg.AddItemInput) (domainagg.ItemMutationResult, error) {
	const op = "orders.add_item"
	var out domainagg.ItemMutationResult

	tenantID, err := parseTenantID(in.TenantID)
	if err == nil {
		err = validateItem(in.Item)
	}
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		now := a.now()
		order, err := a.loadOrder(dbc, tenantID, in.OrderID)
		if err != nil {
			return err
		}
		item, err := a.insertItem(dbc, order, in.Item, now)
		if err != nil {
			return err
		}
		if err := a.resum(dbc, order, now); err != nil {
			return err
		}
		warnings, err := a.planWarnings(dbc, order)
		if err != nil {
			return err
		}
		out = domainagg.ItemMutationResult{
			OrderID:     order.ID,
			ItemID:      item.ID,
			AmountTotal: order.AmountTotal,
			Version:     order.Version,
			Warnings:    warnings,
		}
		return a.record(dbc, order, in.ActorUserID, orders.ActivityItemAdded, map[string]any{
			"item_id":      item.ID,
			"price":        item.Price,
			"amount_total": order.AmountTotal,
		})
	})
	if err != nil {
		return domainagg.ItemMutationResult{}, err
	}
	return out, nil
}

func (a *orderAggregate) RemoveItem(ctx context.Context, in domainagg.RemoveItemInput) (domainagg.ItemMutationResult, error) {
	const op = "orders.remove_item"
	var out domainagg.ItemMutationResult

	tenantID, err := parseTenantID(in.TenantID)
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		now := a.now()
		order, err := a.loadOrder(dbc, tenantID, in.OrderID)
		if err != nil {
			return err
		}
		item, err := a.deps.Items.GetByID(dbc, tenantID, order.ID, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return NotFoundError("order item")
		}
		ids := []uuid.UUID{item.ID}
		if err := a.deps.Responsibilities.ArchiveByItemIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Items.Archive(dbc, ids); err != nil {
			return err
		}
		if err := a.resum(dbc, order, now); err != nil {
			return err
		}
		warnings, err := a.planWarnings(dbc, order)
		if err != nil {
			return err
		}
		out = domainagg.ItemMutationResult{
			OrderID:     order.ID,
			ItemID:      item.ID,
			AmountTotal: order.AmountTotal,
			Version:     order.Version,
			Warnings:    warnings,
		}
		return a.record(dbc, order, in.ActorUserID, orders.ActivityItemRemoved, map[string]any{
			"item_id":      item.ID,
			"price":        item.Price,
			"amount_total": order.AmountTotal,
		})
	})
	if err != nil {
		return domainagg.ItemMutationResult{}, err
	}
	return out, nil
}

func validateEdits(edits []domainagg.InstallmentEdit) error {
	if len(edits) == 0 {
		return ValidationError("at least one installment edit is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(edits))
	for _, e := range edits {
		if e.InstallmentID == uuid.Nil {
			return ValidationError("installment id is required")
		}
		if _, dup := seen[e.InstallmentID]; dup {
			return ValidationError("installment %s is edited more than once", e.InstallmentID)
		}
		seen[e.InstallmentID] = struct{}{}
		if e.Amount != nil && e.Amount.IsNegative() {
			return ValidationError("installment amount must not be negative")
		}
		if e.DueDate != nil && e.DueDate.IsZero() {
			return ValidationError("installment due date must not be empty")
		}
	}
	return nil
}

func (a *orderAggregate) UpdateUnpaidInstallments(ctx context.Context, in domainagg.UpdateInstallmentsInput) (domainagg.UpdateInstallmentsResult, error) {
	const op = "orders.update_installments"
	var out domainagg.UpdateInstallmentsResult

	tenantID, err := parseTenantID(in.TenantID)
	if err == nil {
		err = validateEdits(in.Edits)
	}
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		now := a.now()
		order, err := a.loadOrder(dbc, tenantID, in.OrderID)
		if err != nil {
			return err
		}
		insts, err := a.deps.Installments.GetByOrderIDs(dbc, []uuid.UUID{order.ID})
		if err != nil {
			return err
		}
		index := make(map[uuid.UUID]int, len(insts))
		amounts := make([]decimal.Decimal, len(insts))
		for i, inst := range insts {
			index[inst.ID] = i
			amounts[i] = inst.Amount
		}

		pending := map[int]map[string]any{}
		set := func(i int, key string, val any) {
			if pending[i] == nil {
				pending[i] = map[string]any{}
			}
			pending[i][key] = val
		}

		var warnings []orders.Warning
		for _, e := range in.Edits {
			i, ok := index[e.InstallmentID]
			if !ok {
				return NotFoundError("installment")
			}
			inst := insts[i]
			if inst.Paid() {
				out.SkippedPaid = append(out.SkippedPaid, inst.ID)
				continue
			}
			if e.DueDate != nil {
				set(i, "due_date", e.DueDate.UTC())
			}
			if e.Channel != nil {
				set(i, "channel", strings.TrimSpace(*e.Channel))
			}
			if e.PaymentMethod != nil {
				set(i, "payment_method", strings.TrimSpace(*e.PaymentMethod))
			}
			if e.Amount == nil {
				continue
			}
			amt := e.Amount.Round(2)
			if !in.Redistribute || i == len(insts)-1 {
				amounts[i] = amt
				set(i, "amount", amt)
				continue
			}
			for j := i + 1; j < len(insts); j++ {
				if insts[j].Paid() {
					return ValidationError("cannot redistribute into paid installment #%d", insts[j].Sequence)
				}
			}
			next, w, err := orders.Redistribute(amounts, i, amt, order.AmountTotal)
			if err != nil {
				return ValidationError("%v", err)
			}
			warnings = append(warnings, w...)
			set(i, "amount", amt)
			for j := i + 1; j < len(next); j++ {
				if !next[j].Equal(amounts[j]) {
					set(j, "amount", next[j])
				}
			}
			amounts = next
		}

		positions := make([]int, 0, len(pending))
		for i := range pending {
			positions = append(positions, i)
		}
		sort.Ints(positions)
		for _, i := range positions {
			updates := pending[i]
			updates["updated_at"] = now
			ok, err := a.deps.Installments.UpdateUnpaid(dbc, insts[i].ID, updates)
			if err != nil {
				return err
			}
			if !ok {
				return ConflictError("installment was paid concurrently; reload and retry")
			}
			out.Updated = append(out.Updated, insts[i].ID)
		}

		out.Warnings = mergeWarnings(warnings, orders.CheckSum(amounts, order.AmountTotal))
		return a.record(dbc, order, in.ActorUserID, orders.ActivityInstallmentsUpdated, map[string]any{
			"updated":      out.Updated,
			"skipped_paid": out.SkippedPaid,
			"redistribute": in.Redistribute,
		})
	})
	if err != nil {
		return domainagg.UpdateInstallmentsResult{}, err
	}
	return out, nil
}

func (a *orderAggregate) PayInstallment(ctx context.Context, in domainagg.PayInstallmentInput) (domainagg.PayInstallmentResult, error) {
	const op = "orders.pay_installment"
	var out domainagg.PayInstallmentResult

	tenantID, err := parseTenantID(in.TenantID)
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}
	paidAt, perr := orders.ParsePaidAt(in.PaidAt)
	if perr != nil {
		if errors.Is(perr, orders.ErrPaidAtRequired) {
			return out, rejectInput(a.deps.Base, op, ValidationError("paidAt is required"))
		}
		return out, rejectInput(a.deps.Base, op, ValidationError("paidAt must be an ISO-8601 date"))
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		now := a.now()
		order, err := a.loadOrder(dbc, tenantID, in.OrderID)
		if err != nil {
			return err
		}
		insts, err := a.deps.Installments.GetByOrderIDs(dbc, []uuid.UUID{order.ID})
		if err != nil {
			return err
		}
		var target *orders.OrderInstallment
		for _, inst := range insts {
			if inst.ID == in.InstallmentID {
				target = inst
				break
			}
		}
		if target == nil {
			return NotFoundError("installment")
		}
		if target.Paid() {
			return ConflictError("installment is already paid")
		}
		ok, err := a.deps.Installments.MarkPaid(dbc, target.ID, paidAt)
		if err != nil {
			return err
		}
		if !ok {
			return ConflictError("installment is already paid")
		}

		amountPaid, err := a.deps.Installments.SumPaid(dbc, order.ID)
		if err != nil {
			return err
		}
		unpaid, err := a.deps.Installments.CountUnpaid(dbc, order.ID)
		if err != nil {
			return err
		}
		status := orders.PaymentPartiallyPaid
		if unpaid == 0 {
			status = orders.PaymentPaid
		}
		if err := a.casWrite(dbc, order, now, map[string]any{
			"amount_paid":    amountPaid,
			"payment_status": status,
		}); err != nil {
			return err
		}
		order.AmountPaid = amountPaid
		order.PaymentStatus = status

		out = domainagg.PayInstallmentResult{
			InstallmentID: target.ID,
			PaidAt:        paidAt,
			AmountPaid:    amountPaid,
			PaymentStatus: status,
		}
		return a.record(dbc, order, in.ActorUserID, orders.ActivityInstallmentPaid, map[string]any{
			"installment_id": target.ID,
			"sequence":       target.Sequence,
			"paid_at":        paidAt,
			"payment_status": status,
		})
	})
	if err != nil {
		return domainagg.PayInstallmentResult{}, err
	}
	return out, nil
}

func (a *orderAggregate) UpdateItemStatus(ctx context.Context, in domainagg.UpdateItemStatusInput) error {
	const op = "orders.update_item_status"

	tenantID, err := parseTenantID(in.TenantID)
	if err == nil && !in.Status.Valid() {
		err = ValidationError("unknown item status %q", in.Status)
	}
	if err != nil {
		return rejectInput(a.deps.Base, op, err)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		order, err := a.loadOrder(dbc, tenantID, in.OrderID)
		if err != nil {
			return err
		}
		item, err := a.deps.Items.GetByID(dbc, tenantID, order.ID, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return NotFoundError("order item")
		}
		if in.RestrictToUserID != nil {
			mine, err := a.deps.Responsibilities.ExistsForUser(dbc, item.ID, *in.RestrictToUserID)
			if err != nil {
				return err
			}
			if !mine {
				return NotFoundError("order item")
			}
		}
		if err := a.deps.Items.UpdateStatus(dbc, item.ID, in.Status); err != nil {
			return err
		}
		return a.record(dbc, order, in.ActorUserID, orders.ActivityItemStatusChanged, map[string]any{
			"item_id": item.ID,
			"from":    item.ItemStatus,
			"to":      in.Status,
		})
	})
}

func (a *orderAggregate) PlanInstallments(ctx context.Context, in domainagg.PlanInstallmentsInput) (domainagg.PlanInstallmentsResult, error) {
	const op = "orders.plan_installments"
	var out domainagg.PlanInstallmentsResult

	tenantID, err := parseTenantID(in.TenantID)
	if err == nil {
		switch {
		case in.Count < 1 || in.Count > orders.MaxInstallments:
			err = ValidationError("%v", orders.ErrInstallmentCount)
		case in.BaseDate.IsZero():
			err = ValidationError("base date is required")
		}
	}
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		now := a.now()
		order, err := a.loadOrder(dbc, tenantID, in.OrderID)
		if err != nil {
			return err
		}
		paid, err := a.deps.Installments.CountPaid(dbc, order.ID)
		if err != nil {
			return err
		}
		if paid > 0 {
			return PreconditionError("installment plan cannot be replaced after a payment")
		}
		planned, err := orders.Generate(order.AmountTotal, in.Count, in.BaseDate.UTC())
		if err != nil {
			return ValidationError("%v", err)
		}
		if err := a.deps.Installments.ArchiveByOrder(dbc, order.ID); err != nil {
			return err
		}
		rows := make([]*orders.OrderInstallment, 0, len(planned))
		for _, p := range planned {
			rows = append(rows, &orders.OrderInstallment{
				OrderID:       order.ID,
				TenantID:      tenantID,
				Sequence:      p.Sequence,
				Amount:        p.Amount,
				DueDate:       p.DueDate,
				Channel:       strings.TrimSpace(in.Channel),
				PaymentMethod: strings.TrimSpace(in.PaymentMethod),
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
		if _, err := a.deps.Installments.Create(dbc, rows); err != nil {
			return err
		}
		for _, r := range rows {
			out.InstallmentIDs = append(out.InstallmentIDs, r.ID)
		}
		return a.record(dbc, order, in.ActorUserID, orders.ActivityInstallmentsPlanned, map[string]any{
			"count":        in.Count,
			"base_date":    in.BaseDate.UTC(),
			"amount_total": order.AmountTotal,
		})
	})
	if err != nil {
		return domainagg.PlanInstallmentsResult{}, err
	}
	return out, nil
}

func (a *orderAggregate) ArchiveOrder(ctx context.Context, in domainagg.ArchiveOrderInput) error {
	const op = "orders.archive"

	tenantID, err := parseTenantID(in.TenantID)
	if err != nil {
		return rejectInput(a.deps.Base, op, err)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		now := a.now()
		order, err := a.loadOrder(dbc, tenantID, in.OrderID)
		if err != nil {
			return err
		}
		items, err := a.deps.Items.GetByOrderIDs(dbc, []uuid.UUID{order.ID})
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		if err := a.deps.Responsibilities.ArchiveByItemIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Items.Archive(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Installments.ArchiveByOrder(dbc, order.ID); err != nil {
			return err
		}
		if err := a.casWrite(dbc, order, now, map[string]any{
			"lifecycle": orders.LifecycleArchived,
		}); err != nil {
			return err
		}
		return a.record(dbc, order, in.ActorUserID, orders.ActivityArchived, map[string]any{
			"order_number": order.OrderNumber,
			"items":        len(ids),
		})
	})
}

func (a *orderAggregate) loadOrder(dbc dbctx.Context, tenantID, orderID uuid.UUID) (*orders.Order, error) {
	order, err := a.deps.Orders.GetByID(dbc, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFoundError("order")
	}
	return order, nil
}

func (a *orderAggregate) insertItem(dbc dbctx.Context, order *orders.Order, in domainagg.ItemInput, now time.Time) (*orders.OrderItem, error) {
	var deadline *time.Time
	if in.ClientDeadline != nil {
		d := in.ClientDeadline.UTC()
		deadline = &d
	}
	item := &orders.OrderItem{
		OrderID:         order.ID,
		TenantID:        order.TenantID,
		ClientID:        order.ClientID,
		FunctionalityID: in.FunctionalityID,
		Price:           in.Price.Round(2),
		ClientDeadline:  deadline,
		ItemStatus:      in.ItemStatus,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := a.deps.Items.Create(dbc, []*orders.OrderItem{item}); err != nil {
		return nil, err
	}
	if _, err := a.assigner.Assign(dbc, item, in.Responsible); err != nil {
		return nil, err
	}
	return item, nil
}

// resum recomputes amount_total from the active items and writes it under
// the version the order was loaded with.
func (a *orderAggregate) resum(dbc dbctx.Context, order *orders.Order, now time.Time) error {
	total, err := a.deps.Items.SumActivePrice(dbc, order.ID)
	if err != nil {
		return err
	}
	if err := a.casWrite(dbc, order, now, map[string]any{"amount_total": total}); err != nil {
		return err
	}
	order.AmountTotal = total
	return nil
}

func (a *orderAggregate) casWrite(dbc dbctx.Context, order *orders.Order, now time.Time, updates map[string]any) error {
	next := order.Version + 1
	updates["version"] = next
	updates["updated_at"] = now
	ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, ordersTable, order.ID, order.Version, updates)
	if err != nil {
		return err
	}
	if err := RequireCASSuccess(ok, "order was modified concurrently; reload and retry"); err != nil {
		return err
	}
	order.Version = next
	order.UpdatedAt = now
	return nil
}

func (a *orderAggregate) planWarnings(dbc dbctx.Context, order *orders.Order) ([]orders.Warning, error) {
	insts, err := a.deps.Installments.GetByOrderIDs(dbc, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	amounts := make([]decimal.Decimal, 0, len(insts))
	for _, inst := range insts {
		amounts = append(amounts, inst.Amount)
	}
	return orders.CheckSum(amounts, order.AmountTotal), nil
}

func (a *orderAggregate) record(dbc dbctx.Context, order *orders.Order, actor *uuid.UUID, action string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return a.deps.Activities.Create(dbc, &orders.OrderActivity{
		OrderID:     order.ID,
		TenantID:    order.TenantID,
		ActorUserID: actor,
		Action:      action,
		Payload:     datatypes.JSON(raw),
		CreatedAt:   a.now(),
	})
}

// mergeWarnings keeps the first warning per code.
func mergeWarnings(lists ...[]orders.Warning) []orders.Warning {
	var out []orders.Warning
	seen := map[string]struct{}{}
	for _, l := range lists {
		for _, w := range l {
			if _, ok := seen[w.Code]; ok {
				continue
			}
			seen[w.Code] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
