package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Ref struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ResponsibleView struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uuid.UUID       `json:"userId"`
	Name              string          `json:"name"`
	AssistantDeadline *time.Time      `json:"assistantDeadline"`
	Amount            decimal.Decimal `json:"amount"`
	Delivered         bool            `json:"delivered"`
	PaidAt            *time.Time      `json:"paidAt"`
}

type ItemView struct {
	ID             uuid.UUID        `json:"id"`
	Functionality  Ref              `json:"functionality"`
	Price          decimal.Decimal  `json:"price"`
	ClientDeadline *time.Time       `json:"clientDeadline"`
	ItemStatus     ItemStatus       `json:"itemStatus"`
	Responsible    *ResponsibleView `json:"responsible,omitempty"`

	// Responsibilities holds every active assignment of the item; only the first
	// is exposed as Responsible.
	Responsibilities []ResponsibleView `json:"-"`
}

type InstallmentView struct {
	ID            uuid.UUID       `json:"id"`
	Sequence      int             `json:"sequence"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	PaidAt        *time.Time      `json:"paidAt"`
	Channel       string          `json:"channel"`
	PaymentMethod string          `json:"paymentMethod"`
}

// OrderView is the outward representation of an order.
type OrderView struct {
	ID            uuid.UUID         `json:"id"`
	OrderNumber   string            `json:"orderNumber"`
	Client        Ref               `json:"client"`
	ContractDate  time.Time         `json:"contractDate"`
	AmountTotal   decimal.Decimal   `json:"amountTotal"`
	AmountPaid    decimal.Decimal   `json:"amountPaid"`
	PaymentMethod string            `json:"paymentMethod"`
	PaymentTerms  string            `json:"paymentTerms"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	WorkStatus    WorkStatus        `json:"workStatus"`
	HasInvoice    bool              `json:"hasInvoice"`
	Description   string            `json:"description"`
	Items         []ItemView        `json:"items"`
	Installments  []InstallmentView `json:"installments"`

	// Hydrated is set only by BuildView after items, responsibilities and
	// installments were all loaded.
	Hydrated bool `json:"-"`
}

// Names resolves registry display names. Missing entries render as "".
type Names struct {
	Clients         map[uuid.UUID]string
	Functionalities map[uuid.UUID]string
	Users           map[uuid.UUID]string
}

// BuildView maps a fully loaded order into its view. The caller guarantees
// that o.Items, their Responsibilities and o.Installments were loaded.
func BuildView(o *Order, names Names) OrderView {
	v := OrderView{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Client:        Ref{ID: o.ClientID, Name: names.Clients[o.ClientID]},
		ContractDate:  o.ContractDate,
		AmountTotal:   o.AmountTotal,
		AmountPaid:    o.AmountPaid,
		PaymentMethod: o.PaymentMethod,
		PaymentTerms:  o.PaymentTerms,
		PaymentStatus: o.PaymentStatus,
		WorkStatus:    o.WorkStatus,
		HasInvoice:    o.HasInvoice,
		Description:   o.Description,
		Items:         make([]ItemView, 0, len(o.Items)),
		Installments:  make([]InstallmentView, 0, len(o.Installments)),
		Hydrated:      true,
	}
	for _, it := range o.Items {
		if it == nil {
			continue
		}
		iv := ItemView{
			ID:             it.ID,
			Functionality:  Ref{ID: it.FunctionalityID, Name: names.Functionalities[it.FunctionalityID]},
			Price:          it.Price,
			ClientDeadline: it.ClientDeadline,
			ItemStatus:     it.ItemStatus,
		}
		for _, r := range it.Responsibilities {
			if r == nil {
				continue
			}
			iv.Responsibilities = append(iv.Responsibilities, ResponsibleView{
				ID:                r.ID,
				UserID:            r.UserID,
				Name:              names.Users[r.UserID],
				AssistantDeadline: r.AssistantDeadline,
				Amount:            r.Amount,
				Delivered:         r.Delivered,
				PaidAt:            r.PaidAt,
			})
		}
		if len(iv.Responsibilities) > 0 {
			first := iv.Responsibilities[0]
			iv.Responsible = &first
		}
		v.Items = append(v.Items, iv)
	}
	for _, inst := range o.Installments {
		if inst == nil {
			continue
		}
		v.Installments = append(v.Installments, InstallmentView{
			ID:            inst.ID,
			Sequence:      inst.Sequence,
			Amount:        inst.Amount,
			DueDate:       inst.DueDate,
			PaidAt:        inst.PaidAt,
			Channel:       inst.Channel,
			PaymentMethod: inst.PaymentMethod,
		})
	}
	return v
}
