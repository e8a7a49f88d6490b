package menu

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tableside/internal/domain"
	"tableside/internal/errors"
	mongoinfra "tableside/internal/infrastructure/mongo"
)

type MongoMenuRepository struct {
	coll *mongo.Collection
}

func NewMongoMenuRepository(db *mongo.Database) *MongoMenuRepository {
	return &MongoMenuRepository{coll: db.Collection(mongoinfra.CollMenuItems)}
}

func (r *MongoMenuRepository) Insert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("inserting menu item: %w", err)
	}

	item.ID = res.InsertedID.(primitive.ObjectID)
	return &item, nil
}

func (r *MongoMenuRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError(fmt.Sprintf("menu item %s not found", id.Hex()))
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu item: %w", err)
	}
	return &item, nil
}

// FindByIDs returns the menu items that exist; requested ids with no
// matching document are simply absent from the result.
func (r *MongoMenuRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decoding menu items: %w", err)
	}
	return items, nil
}

func (r *MongoMenuRepository) FindAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	return r.find(ctx, bson.M{"isAvailable": true})
}

func (r *MongoMenuRepository) FindAll(ctx context.Context) ([]domain.MenuItem, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoMenuRepository) find(ctx context.Context, filter bson.M) ([]domain.MenuItem, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []domain.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decoding menu items: %w", err)
	}
	return items, nil
}

func (r *MongoMenuRepository) Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	item.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return nil, fmt.Errorf("updating menu item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("menu item %s not found", item.ID.Hex()))
	}
	return &item, nil
}

func (r *MongoMenuRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}
	if res.DeletedCount == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("menu item %s not found", id.Hex()))
	}
	return nil
}
