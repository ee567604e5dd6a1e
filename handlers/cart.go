package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/middleware"
	"github.com/stylehub-labs/stylehub-backend-go/services"
)

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get returns the user's cart, creating an empty one on first access.
func (h *CartHandler) Get(c echo.Context) error {
	user := middleware.CurrentUser(c)

	cart, err := h.carts.GetOrCreate(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, cart)
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Qty       int    `json:"qty" validate:"required,gte=1"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.AddItem(c.Request().Context(), user.ID, productID, req.Size, req.Color, req.Qty)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, cart)
}

type updateCartItemRequest struct {
	Qty int `json:"qty" validate:"required,gte=1"`
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	itemID, err := objectIDParam(c, "itemId")
	if err != nil {
		return err
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.UpdateItemQty(c.Request().Context(), user.ID, itemID, req.Qty)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	itemID, err := objectIDParam(c, "itemId")
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.RemoveItem(c.Request().Context(), user.ID, itemID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, cart)
}

func (h *CartHandler) Clear(c echo.Context) error {
	user := middleware.CurrentUser(c)

	if err := h.carts.Clear(c.Request().Context(), user.ID); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Cart cleared successfully")
}
