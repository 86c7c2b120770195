package order

import "campuseats-be/internal/apperr"

var (
	// -- Validation & Input --
	ErrNoOrderItems         = apperr.Validation("no order items")
	ErrInvalidQuantity      = apperr.Validation("quantity must be at least 1")
	ErrInvalidPaymentMethod = apperr.Validation("payment method must be upi or cash")
	ErrInvalidStatus        = apperr.Validation("invalid status")

	// -- Resource State --
	ErrOrderNotFound = apperr.NotFound("order not found")

	// -- Authorization --
	ErrNotOrderOwner   = apperr.Forbidden("not authorized to view this order")
	ErrNotCanteenOrder = apperr.Forbidden("not authorized to access this order")

	// -- Concurrency --
	ErrStatusConflict = apperr.Conflict("order status was changed by another request")
)
