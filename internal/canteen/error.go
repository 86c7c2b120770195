package canteen

import "campuseats-be/internal/apperr"

var (
	ErrCanteenNotFound = apperr.NotFound("canteen not found")
	ErrNameExists      = apperr.Conflict("canteen with this name already exists")
)

const PgUniqueViolation = "23505"
