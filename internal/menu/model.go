package menu

import "time"

// MenuItem is a catalog entry owned by a canteen. Availability is
// presentational only and never blocks an order.
type MenuItem struct {
	ID          string    `json:"_id"`
	CanteenID   string    `json:"canteen"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const defaultImageURL = "https://placehold.co/300x200/4A64F0/white?text=Food"

type CreateParams struct {
	CanteenID   string
	Name        string
	Description string
	Price       float64
	ImageURL    string
	IsAvailable bool
}

// UpdateParams carries editable fields; nil leaves the stored value alone.
type UpdateParams struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	IsAvailable *bool
}
