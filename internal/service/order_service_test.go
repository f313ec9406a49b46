package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-mesh/internal/domain"
	"github.com/spec-kit/commerce-mesh/internal/events"
	"github.com/spec-kit/commerce-mesh/internal/observability"
)

type fakeOrderRepo struct {
	byID   map[int64]*domain.Order
	nextID int64
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if f.byID == nil {
		f.byID = map[int64]*domain.Order{}
	}
	f.nextID++
	order.ID = f.nextID
	copied := *order
	f.byID[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range f.byID {
		if order.UserID == userID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	order, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	return nil
}

type fakeItemRepo struct {
	items []domain.Item
}

func (f *fakeItemRepo) List(context.Context) ([]domain.Item, error) {
	return f.items, nil
}

func newOrderTestService(repo *fakeOrderRepo, publisher events.Publisher) *OrderService {
	return NewOrderService(OrderDependencies{
		OrderRepo: repo,
		ItemRepo: &fakeItemRepo{items: []domain.Item{
			{ID: 1, Name: "keyboard", Price: 45.5},
			{ID: 2, Name: "mouse", Price: 19.9},
		}},
		UserClient: &fakeUserClient{},
		Cache:      nil, // cache miss path only
		Publisher:  publisher,
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
	})
}

func TestCreateOrder_PublishesEvent(t *testing.T) {
	repo := &fakeOrderRepo{}
	publisher := events.NewMemoryPublisher()
	svc := newOrderTestService(repo, publisher)

	order := &domain.Order{UserID: 7, Item: "keyboard", Quantity: 2, Price: 45.5}
	require.NoError(t, svc.CreateOrder(context.Background(), order))

	assert.Equal(t, domain.OrderStatusCreated, order.Status)
	require.Len(t, publisher.Published, 1)

	var event events.OrderCreatedEvent
	require.NoError(t, json.Unmarshal(publisher.Published[0].Value, &event))
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, int64(7), event.UserID)
	assert.InDelta(t, 91.0, event.Amount, 0.001)
	assert.NotEmpty(t, event.EventID)
}

func TestCreateOrder_RejectsInvalidInput(t *testing.T) {
	svc := newOrderTestService(&fakeOrderRepo{}, events.NewMemoryPublisher())

	err := svc.CreateOrder(context.Background(), &domain.Order{UserID: 7, Price: 10})
	require.Error(t, err)

	err = svc.CreateOrder(context.Background(), &domain.Order{UserID: 7, Item: "keyboard", Price: -1})
	require.Error(t, err)
}

func TestGetOrder_EnrichmentDegradesGracefully(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewOrderService(OrderDependencies{
		OrderRepo:  repo,
		UserClient: &failingUserClient{},
		Publisher:  events.NewMemoryPublisher(),
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
	})

	order := &domain.Order{UserID: 7, Item: "keyboard", Quantity: 1, Price: 10}
	require.NoError(t, repo.Create(context.Background(), order))

	enriched, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, enriched.ID)
	assert.Nil(t, enriched.User)
}

func TestGetOrder_Enriched(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newOrderTestService(repo, events.NewMemoryPublisher())

	order := &domain.Order{UserID: 7, Item: "keyboard", Quantity: 1, Price: 10}
	require.NoError(t, repo.Create(context.Background(), order))

	enriched, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, enriched.User)
	assert.Equal(t, int64(7), enriched.User.ID)
}

func TestHandlePaymentCreated_SettlesOrder(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newOrderTestService(repo, events.NewMemoryPublisher())

	order := &domain.Order{UserID: 7, Item: "keyboard", Quantity: 1, Price: 10, Status: domain.OrderStatusCreated}
	require.NoError(t, repo.Create(context.Background(), order))

	for _, tc := range []struct {
		payment domain.PaymentStatus
		want    domain.OrderStatus
	}{
		{domain.PaymentStatusSuccess, domain.OrderStatusPaid},
		{domain.PaymentStatusFailed, domain.OrderStatusDeclined},
	} {
		event := events.PaymentCreatedEvent{
			EventID:   "evt-1",
			PaymentID: "pay-1",
			OrderID:   order.ID,
			UserID:    7,
			Amount:    10,
			Status:    tc.payment,
			Timestamp: time.Now(),
		}
		raw, err := json.Marshal(event)
		require.NoError(t, err)

		require.NoError(t, svc.HandlePaymentCreated(context.Background(), nil, raw))

		stored, err := repo.GetByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, stored.Status)
	}
}

func TestListItems_ReturnsCatalog(t *testing.T) {
	svc := newOrderTestService(&fakeOrderRepo{}, events.NewMemoryPublisher())

	items, err := svc.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "keyboard", items[0].Name)
	assert.InDelta(t, 19.9, items[1].Price, 0.001)
}

func TestHandlePaymentCreated_DropsMalformedAndUnknown(t *testing.T) {
	svc := newOrderTestService(&fakeOrderRepo{}, events.NewMemoryPublisher())

	// neither case may return an error: that would block the partition
	require.NoError(t, svc.HandlePaymentCreated(context.Background(), nil, []byte("{not json")))

	event := events.PaymentCreatedEvent{OrderID: 999, Status: domain.PaymentStatusSuccess}
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	require.NoError(t, svc.HandlePaymentCreated(context.Background(), nil, raw))
}

type failingUserClient struct {
	fakeUserClient
}

func (f *failingUserClient) GetUser(context.Context, int64) (*domain.User, error) {
	return nil, context.DeadlineExceeded
}
