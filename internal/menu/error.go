package menu

import "campuseats-be/internal/apperr"

var (
	ErrItemNotFound   = apperr.NotFound("menu item not found")
	ErrNotCanteenItem = apperr.Forbidden("not authorized to manage this item")
	ErrInvalidPrice   = apperr.Validation("price must not be negative")
)
