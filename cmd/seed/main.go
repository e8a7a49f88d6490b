package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"tableside/internal/config"
	"tableside/internal/domain"
	mongoinfra "tableside/internal/infrastructure/mongo"
)

// Seeds an admin user, the first table and a sample menu. Safe to run
// repeatedly: everything is upserted by its natural key.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongoinfra.NewConnection(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer mongoinfra.Disconnect(context.Background(), db)
	log.Println("connected to database")

	now := time.Now().UTC()
	upsert := options.Update().SetUpsert(true)

	email := "admin@restaurant.com"
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hashing admin password: %v", err)
	}
	_, err = db.Collection(mongoinfra.CollUsers).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{
				"email":        email,
				"passwordHash": string(passwordHash),
				"role":         domain.RoleAdmin,
				"updatedAt":    now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		upsert,
	)
	if err != nil {
		log.Fatalf("seeding admin user: %v", err)
	}
	log.Printf("admin user ensured: %s", email)

	_, err = db.Collection(mongoinfra.CollTables).UpdateOne(ctx,
		bson.M{"number": 1},
		bson.M{
			"$set": bson.M{"number": 1, "isActive": true, "updatedAt": now},
			"$setOnInsert": bson.M{
				"token":     uuid.NewString(),
				"createdAt": now,
			},
		},
		upsert,
	)
	if err != nil {
		log.Fatalf("seeding table: %v", err)
	}
	log.Println("table 1 ensured")

	samples := []domain.MenuItem{
		{Name: "Tomato Soup", Category: domain.CategoryStarters, Price: 120, Description: "Classic soup", IsAvailable: true, PrepMinutes: domain.DefaultPrepMinutes},
		{Name: "Paneer Tikka", Category: domain.CategoryStarters, Price: 240, Description: "Marinated paneer", IsAvailable: true, PrepMinutes: domain.DefaultPrepMinutes},
		{Name: "Butter Chicken", Category: domain.CategoryMainCourse, Price: 380, Description: "Creamy gravy", IsAvailable: true, PrepMinutes: domain.DefaultPrepMinutes},
		{Name: "Veg Biryani", Category: domain.CategoryMainCourse, Price: 320, Description: "Aromatic rice", IsAvailable: true, PrepMinutes: domain.DefaultPrepMinutes},
		{Name: "Masala Soda", Category: domain.CategoryDrinks, Price: 90, Description: "Refreshing", IsAvailable: true, PrepMinutes: domain.DefaultPrepMinutes},
		{Name: "Gulab Jamun", Category: domain.CategoryDesserts, Price: 110, Description: "Sweet delight", IsAvailable: true, PrepMinutes: domain.DefaultPrepMinutes},
	}
	for _, s := range samples {
		_, err = db.Collection(mongoinfra.CollMenuItems).UpdateOne(ctx,
			bson.M{"name": s.Name},
			bson.M{
				"$set": bson.M{
					"name":        s.Name,
					"description": s.Description,
					"category":    s.Category,
					"price":       s.Price,
					"isAvailable": s.IsAvailable,
					"prepMinutes": s.PrepMinutes,
					"updatedAt":   now,
				},
				"$setOnInsert": bson.M{"createdAt": now},
			},
			upsert,
		)
		if err != nil {
			log.Fatalf("seeding menu item %s: %v", s.Name, err)
		}
	}
	log.Println("sample menu items ensured")
	log.Println("done")
}
