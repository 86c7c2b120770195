package user

import "campuseats-be/internal/apperr"

var (
	ErrEmailExists        = apperr.Conflict("user with this email already exists")
	ErrInvalidCredentials = apperr.Unauthenticated("invalid email or password")
	ErrUserNotFound       = apperr.NotFound("user not found")
)

// Postgres unique_violation, raised on the users_email_key constraint.
const PgUniqueViolation = "23505"
