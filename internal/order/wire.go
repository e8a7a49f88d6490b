package order

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"tableside/internal/config"
	"tableside/internal/notify"
	"tableside/internal/payment"
)

type Module struct {
	Controller *Controller
	Service    *Service
}

func NewModule(
	db *mongo.Database,
	tables TableRepository,
	menu MenuRepository,
	cfg config.PaymentConfig,
	publisher notify.Publisher,
	logger *zap.Logger,
) *Module {
	repo := NewMongoOrderRepository(db)
	gateway := payment.NewRazorpayGateway(cfg.KeyID, cfg.KeySecret)
	verifier := payment.NewVerifier(cfg.KeySecret)

	service := NewService(repo, tables, menu, gateway, verifier, publisher, logger)
	return &Module{
		Controller: NewController(service, logger),
		Service:    service,
	}
}
