package menu

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Module struct {
	Controller *Controller
	Repository *MongoMenuRepository
}

func NewModule(db *mongo.Database, logger *zap.Logger) *Module {
	repo := NewMongoMenuRepository(db)
	return &Module{
		Controller: NewController(repo, logger),
		Repository: repo,
	}
}
