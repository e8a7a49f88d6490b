package auth

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"tableside/internal/config"
)

type Module struct {
	Controller *Controller
	Service    *Service
}

func NewModule(db *mongo.Database, cfg config.AuthConfig, logger *zap.Logger) *Module {
	repo := NewMongoUserRepository(db)
	service := NewService(repo, cfg.JWTSecret, cfg.TokenTTL, logger)
	return &Module{
		Controller: NewController(service, logger),
		Service:    service,
	}
}
