package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/services"
)

type AdminHandler struct {
	admin  *services.AdminService
	orders *services.OrderService
}

func NewAdminHandler(admin *services.AdminService, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{admin: admin, orders: orders}
}

type createProductRequest struct {
	Name          string               `json:"name" validate:"required"`
	Description   string               `json:"description" validate:"required"`
	Price         float64              `json:"price" validate:"gte=0"`
	DiscountPrice float64              `json:"discountPrice" validate:"gte=0"`
	Images        models.ProductImages `json:"images"`
	Category      string               `json:"category" validate:"required"`
	Subcategory   string               `json:"subcategory" validate:"required"`
	Sizes         []string             `json:"sizes"`
	Colors        []string             `json:"colors"`
	Stock         int                  `json:"stock" validate:"gte=0"`
	Brand         string               `json:"brand"`
	Material      string               `json:"material"`
	Tags          []string             `json:"tags"`
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.admin.CreateProduct(c.Request().Context(), services.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Images:        req.Images,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		Stock:         req.Stock,
		Brand:         req.Brand,
		Material:      req.Material,
		Tags:          req.Tags,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, product)
}

type updateProductRequest struct {
	Name          *string               `json:"name"`
	Description   *string               `json:"description"`
	Price         *float64              `json:"price"`
	DiscountPrice *float64              `json:"discountPrice"`
	Images        *models.ProductImages `json:"images"`
	Category      *string               `json:"category"`
	Subcategory   *string               `json:"subcategory"`
	Sizes         []string              `json:"sizes"`
	Colors        []string              `json:"colors"`
	Stock         *int                  `json:"stock"`
	IsBestseller  *bool                 `json:"isBestseller"`
	Brand         *string               `json:"brand"`
	Material      *string               `json:"material"`
	Tags          []string              `json:"tags"`
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	product, err := h.admin.UpdateProduct(c.Request().Context(), id, services.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Images:        req.Images,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		Stock:         req.Stock,
		IsBestseller:  req.IsBestseller,
		Brand:         req.Brand,
		Material:      req.Material,
		Tags:          req.Tags,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.admin.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Product deleted successfully")
}

func (h *AdminHandler) ToggleBestseller(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.admin.ToggleBestseller(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	verb := "removed from"
	if product.IsBestseller {
		verb = "added to"
	}
	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    product,
		Message: fmt.Sprintf("Product %s bestsellers", verb),
	})
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.admin.ListOrders(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, orders)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, order)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.admin.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "User deleted successfully")
}

func (h *AdminHandler) ToggleAdmin(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.admin.ToggleAdmin(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	verb := "removed from"
	if user.IsAdmin {
		verb = "promoted to"
	}
	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    user,
		Message: fmt.Sprintf("User %s admin", verb),
	})
}

func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}
