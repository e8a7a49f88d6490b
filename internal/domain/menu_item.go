package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"imageUrl"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	IsAvailable bool               `bson:"isAvailable"`
	PrepMinutes int                `bson:"prepMinutes"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

const (
	CategoryStarters   = "Starters"
	CategoryMainCourse = "Main Course"
	CategoryDrinks     = "Drinks"
	CategoryDesserts   = "Desserts"
)

const DefaultPrepMinutes = 15

func IsValidCategory(category string) bool {
	switch category {
	case CategoryStarters, CategoryMainCourse, CategoryDrinks, CategoryDesserts:
		return true
	}
	return false
}
