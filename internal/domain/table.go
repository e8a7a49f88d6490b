package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Table is a physical table. Token is an opaque unguessable string
// embedded in the customer-facing ordering URL; it never changes for
// the lifetime of the table.
type Table struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Number    int                `bson:"number"`
	Token     string             `bson:"token"`
	IsActive  bool               `bson:"isActive"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
