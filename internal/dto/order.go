package dto

import "time"

type CreateOrderRequest struct {
	TableToken   string        `json:"tableToken"`
	OrderedItems []OrderedItem `json:"ordered_items"`
}

type OrderedItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ResolvedOrder is an order with its table and line-item references
// expanded into full nested objects. It is the shape written to HTTP
// responses and pushed over the realtime channel.
type ResolvedOrder struct {
	ID          string              `json:"id"`
	Table       TableDTO            `json:"table"`
	Items       []ResolvedOrderLine `json:"items"`
	Status      string              `json:"status"`
	TotalAmount float64             `json:"totalAmount"`
	Paid        bool                `json:"paid"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type ResolvedOrderLine struct {
	// Item is nil when the referenced menu item no longer exists.
	Item     *MenuItemDTO `json:"item"`
	Quantity int          `json:"quantity"`
}
