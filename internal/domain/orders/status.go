package orders

// Lifecycle is the soft-archival state every orders table carries.
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "ACTIVE"
	LifecycleArchived Lifecycle = "ARCHIVED"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
)

var paymentStatuses = []PaymentStatus{PaymentPending, PaymentPartiallyPaid, PaymentPaid}

func (s PaymentStatus) Valid() bool {
	for _, v := range paymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type WorkStatus string

const (
	WorkPending         WorkStatus = "PENDING"
	WorkInProgress      WorkStatus = "IN_PROGRESS"
	WorkAwaitingClient  WorkStatus = "AWAITING_CLIENT"
	WorkAwaitingAdvisor WorkStatus = "AWAITING_ADVISOR"
	WorkOverdue         WorkStatus = "OVERDUE"
	WorkCompleted       WorkStatus = "COMPLETED"
	WorkCanceled        WorkStatus = "CANCELED"
)

var workStatuses = []WorkStatus{
	WorkPending, WorkInProgress, WorkAwaitingClient, WorkAwaitingAdvisor,
	WorkOverdue, WorkCompleted, WorkCanceled,
}

func (s WorkStatus) Valid() bool {
	for _, v := range workStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type ItemStatus string

const (
	ItemPending         ItemStatus = "PENDING"
	ItemInProgress      ItemStatus = "IN_PROGRESS"
	ItemAwaitingClient  ItemStatus = "AWAITING_CLIENT"
	ItemAwaitingAdvisor ItemStatus = "AWAITING_ADVISOR"
	ItemOverdue         ItemStatus = "OVERDUE"
	ItemFinished        ItemStatus = "FINISHED"
	ItemDelivered       ItemStatus = "DELIVERED"
	ItemCancelled       ItemStatus = "CANCELLED"
)

var itemStatuses = []ItemStatus{
	ItemPending, ItemInProgress, ItemAwaitingClient, ItemAwaitingAdvisor,
	ItemOverdue, ItemFinished, ItemDelivered, ItemCancelled,
}

func (s ItemStatus) Valid() bool {
	for _, v := range itemStatuses {
		if s == v {
			return true
		}
	}
	return false
}
