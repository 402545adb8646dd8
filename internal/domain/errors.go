package domain

import "errors"

var (
	// ErrInvalidOrder marks orders with negative quantities or unknown items.
	// The boundary rejects them before the route search runs.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrConfiguration marks an inconsistent network (missing distances, bad weights,
	// unusable tariff). It is a startup failure, never a per-request one.
	ErrConfiguration = errors.New("configuration error")

	// ErrTooManyWarehouses is returned when an order needs more warehouses than the
	// search is allowed to enumerate.
	ErrTooManyWarehouses = errors.New("too many warehouses required")
)
