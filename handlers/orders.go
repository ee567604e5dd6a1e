package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylehub-labs/stylehub-backend-go/middleware"
	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/services"
)

type OrderHandler struct {
	orders   *services.OrderService
	payments *services.PaymentService
}

func NewOrderHandler(orders *services.OrderService, payments *services.PaymentService) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

type createOrderRequest struct {
	OrderItems      []models.OrderItem     `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	ItemsPrice      float64                `json:"itemsPrice"`
	ShippingPrice   float64                `json:"shippingPrice"`
	TaxPrice        float64                `json:"taxPrice"`
	TotalPrice      float64                `json:"totalPrice"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	order, err := h.orders.Create(c.Request().Context(), user.ID, services.CreateOrderInput{
		Items:           req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		ShippingPrice:   req.ShippingPrice,
		TaxPrice:        req.TaxPrice,
		TotalPrice:      req.TotalPrice,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	order, err := h.orders.Get(c.Request().Context(), user, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	user := middleware.CurrentUser(c)

	orders, err := h.orders.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, orders)
}

type payOrderRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// Pay confirms payment for an order. The session is always verified against
// the processor; client-supplied success fields are not accepted.
func (h *OrderHandler) Pay(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req payOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.payments.Confirm(c.Request().Context(), id, req.SessionID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	order, err := h.orders.Cancel(c.Request().Context(), user.ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, order)
}
