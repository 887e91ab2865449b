package orders

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotHydrated = errors.New("order view is not fully hydrated")

// Sanitize redacts an order for a viewer restricted to their own assignments.
//
// With a nil viewer the view is returned as a copy, unchanged. Otherwise only
// items assigned to the viewer survive, each carrying only the viewer's own
// responsibility; client-facing amounts are zeroed and installments cleared.
// ok is false when nothing is left to show, and the caller must answer as if
// the order does not exist. The input is never modified and the result is
// stable under repeated application.
func Sanitize(in OrderView, viewer *uuid.UUID) (out OrderView, ok bool, err error) {
	if !in.Hydrated {
		return OrderView{}, false, ErrNotHydrated
	}
	out = copyView(in)
	if viewer == nil {
		return out, true, nil
	}
	uid := *viewer

	kept := make([]ItemView, 0, len(out.Items))
	for _, it := range out.Items {
		own := ownResponsibility(it.Responsibilities, uid)
		if own == nil {
			continue
		}
		it.Price = decimal.Zero
		it.Responsibilities = []ResponsibleView{*own}
		r := *own
		it.Responsible = &r
		kept = append(kept, it)
	}
	if len(kept) == 0 {
		return OrderView{}, false, nil
	}
	out.Items = kept
	out.AmountTotal = decimal.Zero
	out.AmountPaid = decimal.Zero
	out.Installments = []InstallmentView{}
	return out, true, nil
}

func ownResponsibility(rs []ResponsibleView, uid uuid.UUID) *ResponsibleView {
	for i := range rs {
		if rs[i].UserID == uid {
			return &rs[i]
		}
	}
	return nil
}

func copyView(in OrderView) OrderView {
	out := in
	out.Items = make([]ItemView, len(in.Items))
	for i, it := range in.Items {
		cp := it
		cp.Responsibilities = append([]ResponsibleView(nil), it.Responsibilities...)
		if it.Responsible != nil {
			r := *it.Responsible
			cp.Responsible = &r
		}
		out.Items[i] = cp
	}
	out.Installments = append(make([]InstallmentView, 0, len(in.Installments)), in.Installments...)
	return out
}
