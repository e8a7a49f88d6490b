package order

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"tableside/internal/domain"
	"tableside/internal/dto"
	apperrors "tableside/internal/errors"
	"tableside/internal/notify"
	"tableside/internal/payment"
)

type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	FindByStatuses(ctx context.Context, statuses []string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*domain.Order, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
}

type TableRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Table, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Table, error)
	FindByToken(ctx context.Context, token string) (*domain.Table, error)
}

type MenuRepository interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error)
}

// Service is the order lifecycle manager: it validates creation,
// computes totals, applies status transitions and hands every
// successful mutation to the publisher.
type Service struct {
	orders    OrderRepository
	tables    TableRepository
	menu      MenuRepository
	gateway   payment.Gateway
	verifier  *payment.Verifier
	publisher notify.Publisher
	logger    *zap.Logger
}

func NewService(
	orders OrderRepository,
	tables TableRepository,
	menu MenuRepository,
	gateway payment.Gateway,
	verifier *payment.Verifier,
	publisher notify.Publisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:    orders,
		tables:    tables,
		menu:      menu,
		gateway:   gateway,
		verifier:  verifier,
		publisher: publisher,
		logger:    logger,
	}
}

// Create places an order for the table identified by token. The total
// is a snapshot of menu prices at creation time and is never
// recomputed. A line whose item id resolves to no menu item prices as
// zero; the line itself is kept. That mirrors the long-standing
// behavior staff tooling depends on, surprising as it is.
func (s *Service) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.ResolvedOrder, error) {
	table, err := s.tables.FindByToken(ctx, req.TableToken)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewValidationError("Invalid table", apperrors.ValidationDetail{
				Field:   "tableToken",
				Message: "no table matches the given token",
			})
		}
		return nil, err
	}

	if len(req.OrderedItems) == 0 {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "ordered_items",
			Message: "ordered_items must not be empty",
		})
	}

	lines := make([]domain.OrderLine, 0, len(req.OrderedItems))
	itemIDs := make([]primitive.ObjectID, 0, len(req.OrderedItems))
	for _, oi := range req.OrderedItems {
		if oi.Quantity < 1 {
			return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "ordered_items.quantity",
				Message: "quantity must be at least 1",
			})
		}
		itemID, err := primitive.ObjectIDFromHex(oi.ItemID)
		if err != nil {
			return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "ordered_items.itemId",
				Message: "itemId must be a valid object id",
			})
		}
		lines = append(lines, domain.OrderLine{ItemID: itemID, Quantity: oi.Quantity})
		itemIDs = append(itemIDs, itemID)
	}

	menuItems, err := s.menu.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemByID := indexItems(menuItems)

	total := 0.0
	for _, line := range lines {
		if item, ok := itemByID[line.ItemID]; ok {
			total += item.Price * float64(line.Quantity)
		}
	}

	created, err := s.orders.Insert(ctx, domain.Order{
		TableID:     table.ID,
		Items:       lines,
		Status:      domain.OrderStatusPending,
		TotalAmount: total,
	})
	if err != nil {
		return nil, err
	}

	resolved := resolve(*created, table, itemByID)
	s.publisher.Publish(notify.Event{Type: notify.EventOrderNew, Order: resolved})
	s.logger.Info("order created",
		zap.String("orderId", resolved.ID),
		zap.Int("tableNumber", table.Number),
		zap.Float64("totalAmount", total),
	)
	return resolved, nil
}

// List returns orders in kitchen FIFO discipline, oldest first. The
// served and paid terminal states only appear when includeServed is
// set.
func (s *Service) List(ctx context.Context, includeServed bool) ([]dto.ResolvedOrder, error) {
	statuses := domain.ActiveOrderStatuses()
	if includeServed {
		statuses = domain.AllOrderStatuses()
	}

	orders, err := s.orders.FindByStatuses(ctx, statuses)
	if err != nil {
		return nil, err
	}
	return s.resolveMany(ctx, orders)
}

// UpdateStatus overwrites the order's status with any of the five
// recognized values. No transition graph is enforced: any status may
// follow any other. Tightening that is a change to this method and
// domain.IsValidOrderStatus only.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*dto.ResolvedOrder, error) {
	if !domain.IsValidOrderStatus(status) {
		return nil, apperrors.NewValidationError("Bad status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, preparing, ready, served, paid",
		})
	}

	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("order not found")
	}

	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveOne(ctx, *updated)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(notify.Event{Type: notify.EventOrderUpdate, Order: resolved})
	s.logger.Info("order status updated", zap.String("orderId", orderID), zap.String("status", status))
	return resolved, nil
}

// Archive force-sets served regardless of the prior status. The order
// stays queryable; nothing is deleted.
func (s *Service) Archive(ctx context.Context, orderID string) (*dto.ResolvedOrder, error) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("order not found")
	}

	updated, err := s.orders.UpdateStatus(ctx, id, domain.OrderStatusServed)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveOne(ctx, *updated)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(notify.Event{Type: notify.EventOrderUpdate, Order: resolved})
	s.logger.Info("order archived", zap.String("orderId", orderID))
	return resolved, nil
}

// InitiatePayment opens a gateway session for the order's stored
// total, converted to minor currency units.
func (s *Service) InitiatePayment(ctx context.Context, orderID string) (*dto.InitiatePaymentResponse, error) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("order not found")
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	amountMinor := int64(math.Round(order.TotalAmount * 100))
	session, err := s.gateway.CreateOrder(ctx, amountMinor, payment.Receipt(orderID))
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment session created",
		zap.String("orderId", orderID),
		zap.String("gatewayOrderId", session.OrderID),
		zap.Int64("amount", session.Amount),
	)
	return &dto.InitiatePaymentResponse{
		Key:      s.gateway.KeyID(),
		Amount:   session.Amount,
		Currency: session.Currency,
		OrderID:  session.OrderID,
	}, nil
}

// VerifyPayment recomputes the callback signature and, only on a
// match, force-sets the paid state. A mismatch mutates nothing.
func (s *Service) VerifyPayment(ctx context.Context, req dto.VerifyPaymentRequest) (*dto.ResolvedOrder, error) {
	if !s.verifier.Verify(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		return nil, apperrors.NewValidationError("Invalid signature", apperrors.ValidationDetail{
			Field:   "razorpay_signature",
			Message: "signature does not match the callback payload",
		})
	}

	id, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("order not found")
	}

	updated, err := s.orders.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveOne(ctx, *updated)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(notify.Event{Type: notify.EventOrderUpdate, Order: resolved})
	s.logger.Info("payment verified", zap.String("orderId", req.OrderID))
	return resolved, nil
}

func (s *Service) resolveOne(ctx context.Context, order domain.Order) (*dto.ResolvedOrder, error) {
	table, err := s.tables.FindByID(ctx, order.TableID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			// Table deleted out from under the order; resolve with an
			// empty table rather than failing the whole mutation.
			table = &domain.Table{ID: order.TableID}
		} else {
			return nil, err
		}
	}

	itemIDs := make([]primitive.ObjectID, 0, len(order.Items))
	for _, line := range order.Items {
		itemIDs = append(itemIDs, line.ItemID)
	}

	menuItems, err := s.menu.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	return resolve(order, table, indexItems(menuItems)), nil
}

func (s *Service) resolveMany(ctx context.Context, orders []domain.Order) ([]dto.ResolvedOrder, error) {
	tableIDSet := make(map[primitive.ObjectID]struct{})
	itemIDSet := make(map[primitive.ObjectID]struct{})
	for _, o := range orders {
		tableIDSet[o.TableID] = struct{}{}
		for _, line := range o.Items {
			itemIDSet[line.ItemID] = struct{}{}
		}
	}

	tables, err := s.tables.FindByIDs(ctx, keys(tableIDSet))
	if err != nil {
		return nil, err
	}
	tableByID := make(map[primitive.ObjectID]*domain.Table, len(tables))
	for i := range tables {
		tableByID[tables[i].ID] = &tables[i]
	}

	menuItems, err := s.menu.FindByIDs(ctx, keys(itemIDSet))
	if err != nil {
		return nil, err
	}
	itemByID := indexItems(menuItems)

	out := make([]dto.ResolvedOrder, 0, len(orders))
	for _, o := range orders {
		table := tableByID[o.TableID]
		if table == nil {
			table = &domain.Table{ID: o.TableID}
		}
		out = append(out, *resolve(o, table, itemByID))
	}
	return out, nil
}

func resolve(order domain.Order, table *domain.Table, itemByID map[primitive.ObjectID]domain.MenuItem) *dto.ResolvedOrder {
	lines := make([]dto.ResolvedOrderLine, 0, len(order.Items))
	for _, line := range order.Items {
		resolvedLine := dto.ResolvedOrderLine{Quantity: line.Quantity}
		if item, ok := itemByID[line.ItemID]; ok {
			d := menuItemDTO(item)
			resolvedLine.Item = &d
		}
		lines = append(lines, resolvedLine)
	}

	return &dto.ResolvedOrder{
		ID: order.ID.Hex(),
		Table: dto.TableDTO{
			ID:        table.ID.Hex(),
			Number:    table.Number,
			Token:     table.Token,
			IsActive:  table.IsActive,
			CreatedAt: table.CreatedAt,
		},
		Items:       lines,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Paid:        order.Paid,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func menuItemDTO(item domain.MenuItem) dto.MenuItemDTO {
	return dto.MenuItemDTO{
		ID:          item.ID.Hex(),
		Name:        item.Name,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Category:    item.Category,
		Price:       item.Price,
		IsAvailable: item.IsAvailable,
		PrepMinutes: item.PrepMinutes,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func indexItems(items []domain.MenuItem) map[primitive.ObjectID]domain.MenuItem {
	byID := make(map[primitive.ObjectID]domain.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID
}

func keys(set map[primitive.ObjectID]struct{}) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
