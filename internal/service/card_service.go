package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-mesh/internal/domain"
	"github.com/spec-kit/commerce-mesh/internal/repository"
	apperrors "github.com/spec-kit/commerce-mesh/pkg/util"
)

// CardService owns payment card CRUD for user-service. A card always
// belongs to an existing profile.
type CardService struct {
	cards repository.CardRepository
	users repository.UserRepository
}

// NewCardService builds the service.
func NewCardService(cards repository.CardRepository, users repository.UserRepository) *CardService {
	return &CardService{cards: cards, users: users}
}

// CreateCard attaches a card to a profile after checking the owner exists.
func (s *CardService) CreateCard(ctx context.Context, card *domain.Card) error {
	if card.Number == "" {
		return apperrors.NewValidationError("card number required", nil)
	}
	if len(card.Number) > 30 || len(card.Holder) > 100 {
		return apperrors.NewValidationError("card number or holder too long", nil)
	}
	if _, err := s.users.GetByID(ctx, card.UserID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": card.UserID})
		}
		return err
	}
	return s.cards.Create(ctx, card)
}

// GetCard loads a card by id.
func (s *CardService) GetCard(ctx context.Context, id int64) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("card", map[string]any{"id": id})
		}
		return nil, err
	}
	return card, nil
}

// ListCardsByUser returns the cards attached to a profile.
func (s *CardService) ListCardsByUser(ctx context.Context, userID int64) ([]domain.Card, error) {
	return s.cards.ListByUser(ctx, userID)
}

// UpdateCard applies card changes; ownership is immutable.
func (s *CardService) UpdateCard(ctx context.Context, card *domain.Card) error {
	if card.Number == "" {
		return apperrors.NewValidationError("card number required", nil)
	}
	if err := s.cards.Update(ctx, card); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("card", map[string]any{"id": card.ID})
		}
		return err
	}
	return nil
}

// DeleteCard removes a card.
func (s *CardService) DeleteCard(ctx context.Context, id int64) error {
	if err := s.cards.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("card", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
