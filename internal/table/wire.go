package table

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Module struct {
	Controller *Controller
	Repository *MongoTableRepository
}

func NewModule(db *mongo.Database, publicAppURL string, logger *zap.Logger) *Module {
	repo := NewMongoTableRepository(db)
	qr := NewQRService(publicAppURL)
	return &Module{
		Controller: NewController(repo, qr, logger),
		Repository: repo,
	}
}
