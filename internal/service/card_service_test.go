package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-mesh/internal/domain"
)

type fakeCardRepo struct {
	byID   map[int64]*domain.Card
	nextID int64
}

func (f *fakeCardRepo) Create(_ context.Context, card *domain.Card) error {
	if f.byID == nil {
		f.byID = map[int64]*domain.Card{}
	}
	f.nextID++
	card.ID = f.nextID
	copied := *card
	f.byID[card.ID] = &copied
	return nil
}

func (f *fakeCardRepo) GetByID(_ context.Context, id int64) (*domain.Card, error) {
	card, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *card
	return &copied, nil
}

func (f *fakeCardRepo) ListByUser(_ context.Context, userID int64) ([]domain.Card, error) {
	var result []domain.Card
	for _, card := range f.byID {
		if card.UserID == userID {
			result = append(result, *card)
		}
	}
	return result, nil
}

func (f *fakeCardRepo) Update(_ context.Context, card *domain.Card) error {
	existing, ok := f.byID[card.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Number = card.Number
	existing.Holder = card.Holder
	existing.ExpirationDate = card.ExpirationDate
	card.UserID = existing.UserID
	return nil
}

func (f *fakeCardRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func newCardTestService(t *testing.T) (*CardService, *fakeCardRepo, *domain.User) {
	t.Helper()
	users := &fakeUserRepo{}
	owner := &domain.User{Email: "bob@example.com", Name: "Bob"}
	require.NoError(t, users.Create(context.Background(), owner))
	cards := &fakeCardRepo{}
	return NewCardService(cards, users), cards, owner
}

func TestCreateCard_Success(t *testing.T) {
	svc, _, owner := newCardTestService(t)

	expiry := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	card := &domain.Card{
		UserID:         owner.ID,
		Number:         "4111111111111111",
		Holder:         "BOB SMITH",
		ExpirationDate: &expiry,
	}
	require.NoError(t, svc.CreateCard(context.Background(), card))
	assert.NotZero(t, card.ID)

	fetched, err := svc.GetCard(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, fetched.UserID)
	assert.Equal(t, "BOB SMITH", fetched.Holder)
}

func TestCreateCard_UnknownOwner(t *testing.T) {
	svc, _, _ := newCardTestService(t)

	err := svc.CreateCard(context.Background(), &domain.Card{UserID: 999, Number: "4111111111111111"})
	requireDomainError(t, err, "NOT_FOUND", 404)
}

func TestCreateCard_Validation(t *testing.T) {
	svc, _, owner := newCardTestService(t)

	err := svc.CreateCard(context.Background(), &domain.Card{UserID: owner.ID})
	requireDomainError(t, err, "VALIDATION", 400)
}

func TestUpdateCard_NotFound(t *testing.T) {
	svc, _, _ := newCardTestService(t)

	err := svc.UpdateCard(context.Background(), &domain.Card{ID: 999, Number: "4111111111111111"})
	requireDomainError(t, err, "NOT_FOUND", 404)
}

func TestDeleteCard_ThenListEmpty(t *testing.T) {
	svc, _, owner := newCardTestService(t)

	card := &domain.Card{UserID: owner.ID, Number: "4111111111111111"}
	require.NoError(t, svc.CreateCard(context.Background(), card))
	require.NoError(t, svc.DeleteCard(context.Background(), card.ID))

	cards, err := svc.ListCardsByUser(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, cards)

	err = svc.DeleteCard(context.Background(), card.ID)
	requireDomainError(t, err, "NOT_FOUND", 404)
}
