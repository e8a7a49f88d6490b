package table

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

type MongoTableRepository struct {
	coll *mongo.Collection
}

func NewMongoTableRepository(db *mongo.Database) *MongoTableRepository {
	return &MongoTableRepository{coll: db.Collection(mongoinfra.CollTables)}
}

func (r *MongoTableRepository) Insert(ctx context.Context, table domain.Table) (*domain.Table, error) {
	now := time.Now().UTC()
	table.CreatedAt = now
	table.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("inserting table: %w", err)
	}

	table.ID = res.InsertedID.(primitive.ObjectID)
	return &table, nil
}

func (r *MongoTableRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Table, error) {
	var table domain.Table
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&table)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError(fmt.Sprintf("table %s not found", id.Hex()))
	}
	if err != nil {
		return nil, fmt.Errorf("querying table: %w", err)
	}
	return &table, nil
}

func (r *MongoTableRepository) FindByToken(ctx context.Context, token string) (*domain.Table, error) {
	var table domain.Table
	err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&table)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError("table with given token not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying table by token: %w", err)
	}
	return &table, nil
}

func (r *MongoTableRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Table, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer cursor.Close(ctx)

	var tables []domain.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, fmt.Errorf("decoding tables: %w", err)
	}
	return tables, nil
}

func (r *MongoTableRepository) FindAll(ctx context.Context) ([]domain.Table, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer cursor.Close(ctx)

	tables := []domain.Table{}
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, fmt.Errorf("decoding tables: %w", err)
	}
	return tables, nil
}
