package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-mesh/internal/api/dto"
	"github.com/spec-kit/commerce-mesh/internal/domain"
	"github.com/spec-kit/commerce-mesh/internal/service"
)

// CardsHandler exposes card endpoints on user-service.
type CardsHandler struct {
	cards *service.CardService
}

// NewCardsHandler constructs handler.
func NewCardsHandler(cardService *service.CardService) *CardsHandler {
	return &CardsHandler{cards: cardService}
}

// Create handles POST /api/v1/cards.
func (h *CardsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	card := &domain.Card{
		UserID:         req.UserID,
		Number:         req.Number,
		Holder:         req.Holder,
		ExpirationDate: req.ExpirationDate,
	}
	if err := h.cards.CreateCard(c.UserContext(), card); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": toCardResponse(card)})
}

// Get handles GET /api/v1/cards/:id.
func (h *CardsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	card, err := h.cards.GetCard(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toCardResponse(card)})
}

// ListByUser handles GET /api/v1/cards?user_id=N.
func (h *CardsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "user_id query parameter required")
	}

	cards, err := h.cards.ListCardsByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}

	out := make([]dto.CardResponse, len(cards))
	for i := range cards {
		out[i] = toCardResponse(&cards[i])
	}
	return c.JSON(fiber.Map{"data": out})
}

// Update handles PUT /api/v1/cards/:id.
func (h *CardsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	card := &domain.Card{
		ID:             id,
		Number:         req.Number,
		Holder:         req.Holder,
		ExpirationDate: req.ExpirationDate,
	}
	if err := h.cards.UpdateCard(c.UserContext(), card); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toCardResponse(card)})
}

// Delete handles DELETE /api/v1/cards/:id.
func (h *CardsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.cards.DeleteCard(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func toCardResponse(card *domain.Card) dto.CardResponse {
	return dto.CardResponse{
		ID:             card.ID,
		UserID:         card.UserID,
		Number:         card.Number,
		Holder:         card.Holder,
		ExpirationDate: card.ExpirationDate,
	}
}
