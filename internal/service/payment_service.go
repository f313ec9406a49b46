package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-mesh/internal/domain"
	"github.com/spec-kit/commerce-mesh/internal/events"
	"github.com/spec-kit/commerce-mesh/internal/observability"
	"github.com/spec-kit/commerce-mesh/internal/repository"
	apperrors "github.com/spec-kit/commerce-mesh/pkg/util"
)

// PaymentService attempts a payment per order.created event and
// announces the outcome.
type PaymentService struct {
	payments  repository.PaymentRepository
	publisher events.Publisher
	metrics   *observability.Metrics
	logger    *zap.Logger
	outcome   func() domain.PaymentStatus
}

// PaymentDependencies encapsulates collaborator requirements. Outcome
// may be nil; the default draw succeeds roughly four times out of five,
// standing in for a real payment provider.
type PaymentDependencies struct {
	PaymentRepo repository.PaymentRepository
	Publisher   events.Publisher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
	Outcome     func() domain.PaymentStatus
}

// NewPaymentService builds the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	outcome := deps.Outcome
	if outcome == nil {
		outcome = func() domain.PaymentStatus {
			if rand.Intn(5) < 4 {
				return domain.PaymentStatusSuccess
			}
			return domain.PaymentStatusFailed
		}
	}
	return &PaymentService{
		payments:  deps.PaymentRepo,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		outcome:   outcome,
	}
}

// HandleOrderCreated creates a payment for the order and publishes the
// outcome. The repository ignores replays of the same order, keeping
// the handler idempotent under redelivery.
func (s *PaymentService) HandleOrderCreated(ctx context.Context, _, value []byte) error {
	var event events.OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		s.logger.Error("malformed order.created event", zap.Error(err))
		return nil
	}
	s.metrics.RecordEvent("order.created", "consumed")

	payment := &domain.Payment{
		ID:      uuid.NewString(),
		OrderID: event.OrderID,
		UserID:  event.UserID,
		Amount:  event.Amount,
		Status:  s.outcome(),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return err
	}

	result := events.PaymentCreatedEvent{
		EventID:   uuid.NewString(),
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
		Status:    payment.Status,
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(ctx, fmt.Sprintf("%d", payment.OrderID), result); err != nil {
		// uncommitted offset redelivers the order event; Create ignores
		// the replay and the publish is retried
		return err
	}
	s.metrics.RecordEvent("payment.created", "published")

	s.logger.Info("payment attempted",
		zap.Int64("order_id", payment.OrderID), zap.String("status", string(payment.Status)))
	return nil
}

// GetPaymentByOrder loads the payment attempted for an order.
func (s *PaymentService) GetPaymentByOrder(ctx context.Context, orderID int64) (*domain.Payment, error) {
	payment, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("payment", map[string]any{"order_id": orderID})
		}
		return nil, err
	}
	return payment, nil
}

// ListPaymentsByUser returns a user's payment history.
func (s *PaymentService) ListPaymentsByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}
