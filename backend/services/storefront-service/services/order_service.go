package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.uber.org/zap"
)

// OrderNotifier pushes order lifecycle messages to the admin chat channel.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, order *models.Order, customer models.Customer) error
	StatusChanged(ctx context.Context, order *models.Order, customer models.Customer, oldStatus string) error
}

// EventPublisher emits order events to the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, evt models.OrderEvent) error
}

// OrderPolicy toggles the optional checks applied when an order is placed.
type OrderPolicy struct {
	EnforcePurchaseLimits bool
	RejectUnknownProducts bool
}

// OrderService defines the order lifecycle operations.
type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
	UpdateDelivery(ctx context.Context, id string, req *models.UpdateDeliveryRequest) (*models.Order, error)
}

const notifyTimeout = 10 * time.Second

type orderServiceImpl struct {
	orders    repository.OrderRepo
	products  repository.ProductRepo
	users     repository.UserRepo
	notifier  OrderNotifier
	events    EventPublisher
	validator *RequestValidator
	policy    OrderPolicy
	loc       *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. notifier and events may be nil.
func NewOrderService(
	orders repository.OrderRepo,
	products repository.ProductRepo,
	users repository.UserRepo,
	notifier OrderNotifier,
	events EventPublisher,
	policy OrderPolicy,
	loc *time.Location,
	logger *zap.Logger,
) OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &orderServiceImpl{
		orders:    orders,
		products:  products,
		users:     users,
		notifier:  notifier,
		events:    events,
		validator: NewRequestValidator(),
		policy:    policy,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateOrder validates the request against the live catalog and persists a
// Pending order. Notification and event delivery never affect the outcome.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, apperrors.ErrNoItems
	}
	if req.ShippingAddress == nil || !s.validator.Valid(req.ShippingAddress) {
		return nil, apperrors.ErrMissingAddress
	}
	if err := s.validator.Check(req, "Invalid order items"); err != nil {
		return nil, err
	}
	if err := s.checkCatalog(ctx, req.Items); err != nil {
		return nil, err
	}

	now := s.now()
	estimate := now.Add(models.DefaultDeliveryWindow)
	order := &models.Order{
		UserID:            userID,
		Items:             append([]models.LineItem(nil), req.Items...),
		Total:             req.Total,
		ShippingAddress:   *req.ShippingAddress,
		Status:            models.StatusPending,
		OrderDate:         now,
		EstimatedDelivery: &estimate,
	}

	if req.DeliveryCharges != nil {
		order.DeliveryCharges = *req.DeliveryCharges
	}
	s.checkTotal(userID, order, req.DeliveryCharges != nil)

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist order", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", userID),
		zap.Float64("total", order.Total),
	)

	s.announce(ctx, order, "")
	return order, nil
}

// checkTotal compares the client total with the line items. Without explicit
// delivery charges the difference is expected, so it only logs at debug.
func (s *orderServiceImpl) checkTotal(userID string, order *models.Order, chargesSent bool) {
	expected := order.ItemsSubtotal() + order.DeliveryCharges
	if math.Abs(expected-order.Total) <= 0.01 {
		return
	}
	level := zap.DebugLevel
	if chargesSent {
		level = zap.WarnLevel
	}
	if ce := s.logger.Check(level, "Order total differs from line items"); ce != nil {
		ce.Write(
			zap.String("user_id", userID),
			zap.Float64("total", order.Total),
			zap.Float64("computed", expected),
		)
	}
}

// checkCatalog enforces stock and, when enabled, purchase limits. The first
// offending item in request order decides the error.
func (s *orderServiceImpl) checkCatalog(ctx context.Context, items []models.LineItem) error {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ProductID != "" && !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load products for order", zap.Error(err))
		return apperrors.Internal(err)
	}

	for _, item := range items {
		p, ok := products[item.ProductID]
		if item.ProductID == "" || !ok {
			if s.policy.RejectUnknownProducts {
				return apperrors.BadRequest("Product not found: " + item.Name)
			}
			s.logger.Warn("Order item references unknown product",
				zap.String("product_id", item.ProductID),
				zap.String("name", item.Name),
			)
			continue
		}
		if !p.InStock {
			return apperrors.BadRequest("Product out of stock: " + p.Name)
		}
	}

	if !s.policy.EnforcePurchaseLimits {
		return nil
	}

	requested := make(map[string]int, len(items))
	for _, item := range items {
		requested[item.ProductID] += item.Quantity
	}
	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			continue
		}
		if remaining, limited := p.RemainingAllowance(0); limited && requested[id] > remaining {
			return apperrors.BadRequest(fmt.Sprintf("Purchase limit exceeded for %s (max %d)", p.Name, *p.PurchaseLimit))
		}
	}
	return nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapOrderErr(err, id)
	}
	return order, nil
}

func (s *orderServiceImpl) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list user orders", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

func (s *orderServiceImpl) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

// UpdateStatus writes any whitelisted status, including backwards moves.
// Writing the current status again succeeds without a notification.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	current, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapOrderErr(err, id)
	}
	oldStatus := current.Status

	updated, err := s.orders.ApplyStatusChange(ctx, id, models.StatusChange{Status: status})
	if err != nil {
		return nil, s.mapOrderErr(err, id)
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("from", oldStatus),
		zap.String("to", status),
	)

	if oldStatus != status {
		s.announce(ctx, updated, oldStatus)
	}
	return updated, nil
}

func (s *orderServiceImpl) UpdateDelivery(ctx context.Context, id string, req *models.UpdateDeliveryRequest) (*models.Order, error) {
	if req == nil || req.Empty() {
		return nil, apperrors.BadRequest("No delivery fields provided")
	}
	if err := s.validator.Check(req, "Invalid delivery details"); err != nil {
		return nil, err
	}

	update := models.DeliveryUpdate{
		DeliveryWindow:     req.DeliveryWindow,
		DeliveryBoy:        req.DeliveryBoy,
		DeliveryCharges:    req.DeliveryCharges,
		CancellationReason: req.CancellationReason,
	}
	if req.EstimatedDelivery != nil {
		t, err := ParseDeliveryDate(*req.EstimatedDelivery, s.loc)
		if err != nil {
			return nil, apperrors.BadRequest("Invalid estimatedDelivery")
		}
		update.EstimatedDelivery = &t
	}

	order, err := s.orders.UpdateDelivery(ctx, id, update)
	if err != nil {
		return nil, s.mapOrderErr(err, id)
	}
	s.logger.Info("Order delivery details updated", zap.String("order_id", id))
	return order, nil
}

// announce delivers the chat notification and the bus event. Both are best
// effort and detached from the request context so a client disconnect does
// not cut them short.
func (s *orderServiceImpl) announce(ctx context.Context, order *models.Order, oldStatus string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	eventType := models.EventOrderCreated
	if oldStatus != "" {
		eventType = models.EventOrderStatusChanged
	}

	if s.notifier != nil {
		customer := s.customer(ctx, order.UserID)
		var err error
		if oldStatus == "" {
			err = s.notifier.OrderCreated(ctx, order, customer)
		} else {
			err = s.notifier.StatusChanged(ctx, order, customer, oldStatus)
		}
		if err != nil {
			s.logger.Warn("Order notification failed",
				zap.String("order_id", order.ID.Hex()),
				zap.String("event", eventType),
				zap.Error(err),
			)
		}
	}

	if s.events != nil {
		evt := models.NewOrderEvent(eventType, order, oldStatus, s.now())
		if err := s.events.Publish(ctx, evt); err != nil {
			s.logger.Warn("Order event publish failed",
				zap.String("order_id", order.ID.Hex()),
				zap.String("event", eventType),
				zap.Error(err),
			)
		}
	}
}

// customer resolves the order owner for notifications. Lookup failures yield
// an empty Customer and the formatter substitutes placeholders.
func (s *orderServiceImpl) customer(ctx context.Context, userID string) models.Customer {
	if s.users == nil {
		return models.Customer{}
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.Customer{}
	}
	return models.Customer{Name: user.Name, Email: user.Email}
}

func (s *orderServiceImpl) mapOrderErr(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrOrderNotFound
	}
	s.logger.Error("Order persistence failed", zap.String("order_id", id), zap.Error(err))
	return apperrors.Internal(err)
}

var deliveryDateLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

// ParseDeliveryDate accepts RFC 3339 or a local date/time in loc.
func ParseDeliveryDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range deliveryDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
