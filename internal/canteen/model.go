package canteen

import "time"

// Canteen is a food vendor. A manager account owns exactly one canteen.
type Canteen struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	ImageURL  string    `json:"imageUrl"`
	IsOpen    bool      `json:"isOpen"`
	UpiID     *string   `json:"upiId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const defaultImageURL = "https://placehold.co/600x400/FF7043/white?text=Canteen"

type CreateParams struct {
	Name     string
	Location string
	ImageURL string
	UpiID    *string
}

// UpdateSettingsParams carries the manager-editable fields. Nil means
// "leave unchanged".
type UpdateSettingsParams struct {
	UpiID  *string
	IsOpen *bool
}
