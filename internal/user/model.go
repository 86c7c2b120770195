package user

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CanteenID *string   `json:"canteen,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
