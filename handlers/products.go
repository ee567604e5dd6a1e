package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stylehub-labs/stylehub-backend-go/middleware"
	"github.com/stylehub-labs/stylehub-backend-go/services"
	"github.com/stylehub-labs/stylehub-backend-go/store"
)

type ProductHandler struct {
	catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// productListResponse keeps pagination fields at the top level, next to the
// envelope, the way the storefront expects them.
type productListResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	Total   int64       `json:"total"`
}

// List handles GET /products with the full filter surface.
func (h *ProductHandler) List(c echo.Context) error {
	filter := store.ProductFilter{
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		Size:        c.QueryParam("size"),
		Color:       c.QueryParam("color"),
		Keyword:     c.QueryParam("keyword"),
		Bestseller:  c.QueryParam("bestseller") == "true",
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))
	sort := store.ProductSort(c.QueryParam("sort"))

	result, err := h.catalog.List(c.Request().Context(), filter, page, pageSize, sort)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, productListResponse{
		Success: true,
		Data:    result.Products,
		Page:    result.Page,
		Pages:   result.Pages,
		Total:   result.Total,
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, product)
}

func (h *ProductHandler) Related(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	products, err := h.catalog.Related(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, products)
}

func (h *ProductHandler) Bestsellers(c echo.Context) error {
	products, err := h.catalog.Bestsellers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, products)
}

func (h *ProductHandler) Featured(c echo.Context) error {
	products, err := h.catalog.Featured(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, products)
}

type createReviewRequest struct {
	Rating  float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string  `json:"comment" validate:"required"`
}

// CreateReview handles POST /products/:id/reviews.
func (h *ProductHandler) CreateReview(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if _, err := h.catalog.AddReview(c.Request().Context(), user, id, req.Rating, req.Comment); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusCreated, "Review added successfully")
}
