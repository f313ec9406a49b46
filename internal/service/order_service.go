package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-mesh/internal/client"
	"github.com/spec-kit/commerce-mesh/internal/domain"
	"github.com/spec-kit/commerce-mesh/internal/events"
	"github.com/spec-kit/commerce-mesh/internal/observability"
	"github.com/spec-kit/commerce-mesh/internal/persistence"
	"github.com/spec-kit/commerce-mesh/internal/repository"
	apperrors "github.com/spec-kit/commerce-mesh/pkg/util"
)

const userCacheTTL = 5 * time.Minute

// OrderService owns order CRUD, user enrichment and the order side of
// the payment choreography.
type OrderService struct {
	orders    repository.OrderRepository
	items     repository.ItemRepository
	users     client.UserServiceClient
	cache     *persistence.Redis
	publisher events.Publisher
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// OrderDependencies encapsulates collaborator requirements.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	ItemRepo   repository.ItemRepository
	UserClient client.UserServiceClient
	Cache      *persistence.Redis
	Publisher  events.Publisher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:    deps.OrderRepo,
		items:     deps.ItemRepo,
		users:     deps.UserClient,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// CreateOrder persists the order and announces it on the event log.
// The order is accepted even if the publish fails; payment is retried
// out of band, never inside the request.
func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) error {
	if order.Item == "" || order.Price <= 0 {
		return apperrors.NewValidationError("item and positive price required", nil)
	}
	if order.Quantity <= 0 {
		order.Quantity = 1
	}
	order.Status = domain.OrderStatusCreated

	if err := s.orders.Create(ctx, order); err != nil {
		return err
	}

	event := events.OrderCreatedEvent{
		EventID:   uuid.NewString(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Amount:    order.Price * float64(order.Quantity),
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(ctx, fmt.Sprintf("%d", order.ID), event); err != nil {
		s.logger.Error("publish order.created", zap.Int64("order_id", order.ID), zap.Error(err))
	} else {
		s.metrics.RecordEvent("order.created", "published")
	}
	return nil
}

// GetOrder loads an order and enriches it with the owner's profile.
// Enrichment degrades gracefully: a user-service outage returns the
// order without the profile rather than failing the read.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.EnrichedOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, err
	}

	enriched := &domain.EnrichedOrder{Order: *order}
	enriched.User = s.lookupUser(ctx, order.UserID)
	return enriched, nil
}

// ListOrdersByUser returns a user's orders without enrichment.
func (s *OrderService) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListItems returns the catalog.
func (s *OrderService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.items.List(ctx)
}

func (s *OrderService) lookupUser(ctx context.Context, userID int64) *domain.User {
	key := fmt.Sprintf("user:%d", userID)

	var cached domain.User
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn("user enrichment failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}

	s.cache.SetJSON(ctx, key, user, userCacheTTL)
	return user
}

// HandlePaymentCreated settles the order status from a payment event.
// Events for unknown orders are dropped after logging; returning an
// error would block the partition on a poison message.
func (s *OrderService) HandlePaymentCreated(ctx context.Context, _, value []byte) error {
	var event events.PaymentCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		s.logger.Error("malformed payment.created event", zap.Error(err))
		return nil
	}
	s.metrics.RecordEvent("payment.created", "consumed")

	status := domain.OrderStatusDeclined
	if event.Status == domain.PaymentStatusSuccess {
		status = domain.OrderStatusPaid
	}

	if err := s.orders.UpdateStatus(ctx, event.OrderID, status); err != nil {
		if err == pgx.ErrNoRows {
			s.logger.Warn("payment event for unknown order", zap.Int64("order_id", event.OrderID))
			return nil
		}
		return err
	}

	s.logger.Info("order settled",
		zap.Int64("order_id", event.OrderID), zap.String("status", string(status)))
	return nil
}
