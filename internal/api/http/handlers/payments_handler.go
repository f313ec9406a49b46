package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-mesh/internal/api/dto"
	"github.com/spec-kit/commerce-mesh/internal/domain"
	"github.com/spec-kit/commerce-mesh/internal/service"
)

// PaymentsHandler exposes payment read endpoints on payment-service.
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: paymentService}
}

// GetByOrder handles GET /api/v1/payments/order/:id.
func (h *PaymentsHandler) GetByOrder(c *fiber.Ctx) error {
	orderID, err := parseID(c)
	if err != nil {
		return err
	}

	payment, err := h.payments.GetPaymentByOrder(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toPaymentResponse(payment)})
}

// ListByUser handles GET /api/v1/payments?user_id=N.
func (h *PaymentsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "user_id required")
	}

	payments, err := h.payments.ListPaymentsByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}

	out := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		out[i] = toPaymentResponse(&payments[i])
	}
	return c.JSON(fiber.Map{"data": out})
}

func toPaymentResponse(payment *domain.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt,
	}
}
