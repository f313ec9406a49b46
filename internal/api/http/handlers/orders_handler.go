package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-mesh/internal/api/dto"
	"github.com/spec-kit/commerce-mesh/internal/domain"
	"github.com/spec-kit/commerce-mesh/internal/service"
)

// OrdersHandler exposes order endpoints on order-service.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Create handles POST /api/v1/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	order := &domain.Order{
		UserID:   req.UserID,
		Item:     req.Item,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
	if err := h.orders.CreateOrder(c.UserContext(), order); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": toOrderResponse(order, nil)})
}

// Get handles GET /api/v1/orders/:id, returning the enriched order.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	enriched, err := h.orders.GetOrder(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toOrderResponse(&enriched.Order, enriched.User)})
}

// ListByUser handles GET /api/v1/orders?user_id=N.
func (h *OrdersHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "user_id required")
	}

	orders, err := h.orders.ListOrdersByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}

	out := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i], nil)
	}
	return c.JSON(fiber.Map{"data": out})
}

func toOrderResponse(order *domain.Order, user *domain.User) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:       order.ID,
		UserID:   order.UserID,
		Item:     order.Item,
		Quantity: order.Quantity,
		Price:    order.Price,
		Status:   string(order.Status),
	}
	if user != nil {
		userResp := toUserResponse(user)
		resp.User = &userResp
	}
	return resp
}
