package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/middleware"
	"github.com/stylehub-labs/stylehub-backend-go/services"
)

type PaymentHandler struct {
	payments       *services.PaymentService
	publishableKey string
}

func NewPaymentHandler(payments *services.PaymentService, publishableKey string) *PaymentHandler {
	return &PaymentHandler{payments: payments, publishableKey: publishableKey}
}

type createCheckoutSessionRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

// CreateCheckoutSession hands the order off to the hosted payment page and
// returns its redirect URL.
func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	var req createCheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID")
	}

	user := middleware.CurrentUser(c)
	url, err := h.payments.CreateCheckoutHandoff(c.Request().Context(), user.ID, orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

type verifySessionRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	OrderID   string `json:"orderId" validate:"required"`
}

// VerifySession retrieves the session from the processor and marks the order
// paid when the processor reports payment complete.
func (h *PaymentHandler) VerifySession(c echo.Context) error {
	var req verifySessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID")
	}

	if _, err := h.payments.Confirm(c.Request().Context(), orderID, req.SessionID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// PublishableKey returns the processor's public key for the frontend.
func (h *PaymentHandler) PublishableKey(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"key":     h.publishableKey,
	})
}
