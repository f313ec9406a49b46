package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-mesh/internal/api/dto"
	"github.com/spec-kit/commerce-mesh/internal/service"
)

// ItemsHandler exposes the catalog endpoint on order-service.
type ItemsHandler struct {
	orders *service.OrderService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(orderService *service.OrderService) *ItemsHandler {
	return &ItemsHandler{orders: orderService}
}

// List handles GET /api/v1/items.
func (h *ItemsHandler) List(c *fiber.Ctx) error {
	items, err := h.orders.ListItems(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.ItemResponse, len(items))
	for i, item := range items {
		out[i] = dto.ItemResponse{ID: item.ID, Name: item.Name, Price: item.Price}
	}
	return c.JSON(fiber.Map{"data": out})
}
