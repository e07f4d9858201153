package order

import salesEntity "storeops.GO/model/entity/sales"

// transitions is the order status state machine. Shipped, delivered and
// cancelled rows absent or empty mean terminal/no further moves.
var transitions = map[salesEntity.Status][]salesEntity.Status{
	salesEntity.StatusPending:    {salesEntity.StatusProcessing, salesEntity.StatusCancelled},
	salesEntity.StatusProcessing: {salesEntity.StatusShipped, salesEntity.StatusCancelled},
	salesEntity.StatusShipped:    {salesEntity.StatusDelivered},
}

// CanTransition reports whether from -> to is a legal transition.
func CanTransition(from, to salesEntity.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func knownStatus(s salesEntity.Status) bool {
	switch s {
	case salesEntity.StatusPending, salesEntity.StatusProcessing,
		salesEntity.StatusShipped, salesEntity.StatusDelivered, salesEntity.StatusCancelled:
		return true
	}
	return false
}
