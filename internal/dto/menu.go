package dto

import "time"

type MenuItemDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	IsAvailable bool      `json:"isAvailable"`
	PrepMinutes int       `json:"prepMinutes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateMenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	IsAvailable *bool   `json:"isAvailable"`
	PrepMinutes int     `json:"prepMinutes"`
}

// UpdateMenuItemRequest carries a partial update: zero-valued fields
// leave the stored value untouched.
type UpdateMenuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"isAvailable"`
	PrepMinutes *int     `json:"prepMinutes"`
}
