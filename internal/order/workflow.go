package order

import "time"

// Canonical workflow codes seeded by migration. Statuses added by admins
// use codes outside this set and are not transition-constrained.
const (
	StatusCreated         = "created"
	StatusConfirmed       = "confirmed"
	StatusCourierAssigned = "courier_assigned"
	StatusDispatched      = "dispatched"
	StatusDelivered       = "delivered"
	StatusCancelled       = "cancelled"
)

// transitions maps a canonical code to the codes reachable from it.
// delivered and cancelled are terminal.
var transitions = map[string][]string{
	StatusCreated:         {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusCourierAssigned, StatusCancelled},
	StatusCourierAssigned: {StatusDispatched, StatusCancelled},
	StatusDispatched:      {StatusDelivered, StatusCancelled},
	StatusDelivered:       {},
	StatusCancelled:       {},
}

func IsCanonical(code string) bool {
	_, ok := transitions[code]
	return ok
}

// CanTransition reports whether an order may move between the two status
// codes. Staying put is always allowed, and moves involving a non-canonical
// code on either side are unconstrained.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	if !IsCanonical(from) || !IsCanonical(to) {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// stamp records the moment an order first reaches a canonical milestone.
// Already-set timestamps are left alone so revisiting a code (via a
// non-canonical detour) cannot rewrite history.
func stamp(o *Order, code string, now time.Time) {
	switch code {
	case StatusConfirmed:
		if o.ConfirmedAt == nil {
			o.ConfirmedAt = &now
		}
	case StatusCourierAssigned:
		if o.CourierAssignedAt == nil {
			o.CourierAssignedAt = &now
		}
	case StatusDispatched:
		if o.DispatchedAt == nil {
			o.DispatchedAt = &now
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
	}
}
