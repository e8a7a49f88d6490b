package order

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tableside/internal/domain"
	"tableside/internal/errors"
	mongoinfra "tableside/internal/infrastructure/mongo"
)

type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(mongoinfra.CollOrders)}
}

func (r *MongoOrderRepository) Insert(ctx context.Context, order domain.Order) (*domain.Order, error) {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	order.ID = res.InsertedID.(primitive.ObjectID)
	return &order, nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", id.Hex()))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order: %w", err)
	}
	return &order, nil
}

// FindByStatuses returns matching orders oldest first, which is the
// FIFO discipline kitchen displays expect.
func (r *MongoOrderRepository) FindByStatuses(ctx context.Context, statuses []string) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": bson.M{"$in": statuses}}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus overwrites the status field in a single document write
// and returns the updated order. Concurrent updates race last-write-wins;
// the document write itself is the only atomicity taken.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*domain.Order, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

// MarkPaid force-sets the terminal paid state regardless of the
// current status.
func (r *MongoOrderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"status":    domain.OrderStatusPaid,
		"paid":      true,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *MongoOrderRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, set bson.M) (*domain.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order domain.Order
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", id.Hex()))
	}
	if err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	}
	return &order, nil
}
