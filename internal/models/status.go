package models

// Status is the order lifecycle stage. The names are the exact values stored
// in order records and shown on the admin board.
type Status string

const (
	StatusKitchen         Status = "Cozinha"
	StatusAwaitingCourier Status = "Aguardando entrega"
	StatusOutForDelivery  Status = "Saiu para entrega"
	StatusDelivered       Status = "Entregue"
	StatusCancelled       Status = "Cancelados"
)

// AllStatuses lists every status in board column order.
var AllStatuses = []Status{
	StatusKitchen,
	StatusAwaitingCourier,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// transitions is the authoritative transition table. Cancellation is only
// reachable before the order leaves the restaurant.
var transitions = map[Status][]Status{
	StatusKitchen:         {StatusAwaitingCourier, StatusCancelled},
	StatusAwaitingCourier: {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery:  {StatusDelivered},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Pending reports whether the order still needs restaurant attention.
func (s Status) Pending() bool {
	switch s {
	case StatusKitchen, StatusAwaitingCourier, StatusOutForDelivery:
		return true
	}
	return false
}

// CanTransition reports whether the table allows moving from one status to
// another. Every status mutation must pass this check, independent of which
// actions any view offers.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s, in the order the admin
// board offers them. Terminal statuses return nil.
func NextStatuses(s Status) []Status {
	next := transitions[s]
	if len(next) == 0 {
		return nil
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
