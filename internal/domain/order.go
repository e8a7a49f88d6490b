package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TableID     primitive.ObjectID `bson:"table"`
	Items       []OrderLine        `bson:"items"`
	Status      string             `bson:"status"`
	TotalAmount float64            `bson:"totalAmount"`
	Paid        bool               `bson:"paid"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type OrderLine struct {
	ItemID   primitive.ObjectID `bson:"item"`
	Quantity int                `bson:"quantity"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusPaid      = "paid"
)

// AllOrderStatuses lists the recognized statuses in workflow order.
func AllOrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusServed,
		OrderStatusPaid,
	}
}

// ActiveOrderStatuses lists the statuses the kitchen still acts on.
func ActiveOrderStatuses() []string {
	return []string{OrderStatusPending, OrderStatusPreparing, OrderStatusReady}
}

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusServed, OrderStatusPaid:
		return true
	}
	return false
}
