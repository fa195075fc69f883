package types

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusPreparing  OrderStatus = "Preparing"
	StatusReady      OrderStatus = "Ready"
	StatusDelivering OrderStatus = "Delivering"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusPreparing, StatusCancelled},
	StatusPreparing:  {StatusReady, StatusCancelled},
	StatusReady:      {StatusDelivering, StatusDelivered, StatusCancelled},
	StatusDelivering: {StatusDelivered},
	StatusDelivered:  nil,
	StatusCancelled:  nil,
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether an order in status s may move to next.
// Staying in the same status is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return s.Valid()
	}

	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}
