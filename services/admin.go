package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store"
)

// AdminService is the privileged surface over the catalog, orders and users.
// It carries no lifecycle logic of its own; order transitions go through
// OrderService.
type AdminService struct {
	products store.ProductStore
	orders   store.OrderStore
	users    store.UserStore
}

func NewAdminService(products store.ProductStore, orders store.OrderStore, users store.UserStore) *AdminService {
	return &AdminService{products: products, orders: orders, users: users}
}

// CreateProductInput is the admin product form.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	DiscountPrice float64
	Images        models.ProductImages
	Category      string
	Subcategory   string
	Sizes         []string
	Colors        []string
	Stock         int
	Brand         string
	Material      string
	Tags          []string
}

func validCategory(c string) bool {
	for _, known := range models.Categories {
		if c == known {
			return true
		}
	}
	return false
}

func validSubcategory(c string) bool {
	for _, known := range models.Subcategories {
		if c == known {
			return true
		}
	}
	return false
}

func (s *AdminService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if in.Name == "" || in.Description == "" {
		return nil, InvalidStatef("please provide a name and description")
	}
	if in.Price < 0 || in.DiscountPrice < 0 || in.Stock < 0 {
		return nil, InvalidStatef("price and stock must be non-negative")
	}
	if !validCategory(in.Category) {
		return nil, InvalidStatef("unknown category %q", in.Category)
	}
	if !validSubcategory(in.Subcategory) {
		return nil, InvalidStatef("unknown subcategory %q", in.Subcategory)
	}
	if len(in.Images.Flat) == 0 && len(in.Images.ByColor) == 0 {
		return nil, InvalidStatef("please provide product images")
	}

	brand := in.Brand
	if brand == "" {
		brand = "StyleHub"
	}

	product := &models.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		Images:        in.Images,
		Category:      in.Category,
		Subcategory:   in.Subcategory,
		Sizes:         in.Sizes,
		Colors:        in.Colors,
		Stock:         in.Stock,
		Brand:         brand,
		Material:      in.Material,
		Tags:          in.Tags,
		Reviews:       []models.Review{},
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput carries optional fields; nil means keep the current
// value.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *float64
	DiscountPrice *float64
	Images        *models.ProductImages
	Category      *string
	Subcategory   *string
	Sizes         []string
	Colors        []string
	Stock         *int
	IsBestseller  *bool
	Brand         *string
	Material      *string
	Tags          []string
}

func (s *AdminService) UpdateProduct(ctx context.Context, id primitive.ObjectID, in UpdateProductInput) (*models.Product, error) {
	product, err := s.products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("product not found")
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, InvalidStatef("price must be non-negative")
		}
		product.Price = *in.Price
	}
	if in.DiscountPrice != nil {
		product.DiscountPrice = *in.DiscountPrice
	}
	if in.Images != nil {
		product.Images = *in.Images
	}
	if in.Category != nil {
		if !validCategory(*in.Category) {
			return nil, InvalidStatef("unknown category %q", *in.Category)
		}
		product.Category = *in.Category
	}
	if in.Subcategory != nil {
		if !validSubcategory(*in.Subcategory) {
			return nil, InvalidStatef("unknown subcategory %q", *in.Subcategory)
		}
		product.Subcategory = *in.Subcategory
	}
	if in.Sizes != nil {
		product.Sizes = in.Sizes
	}
	if in.Colors != nil {
		product.Colors = in.Colors
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, InvalidStatef("stock must be non-negative")
		}
		product.Stock = *in.Stock
	}
	if in.IsBestseller != nil {
		product.IsBestseller = *in.IsBestseller
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Material != nil {
		product.Material = *in.Material
	}
	if in.Tags != nil {
		product.Tags = in.Tags
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return NotFoundf("product not found")
	}
	return err
}

func (s *AdminService) ToggleBestseller(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("product not found")
	}
	if err != nil {
		return nil, err
	}

	product.IsBestseller = !product.IsBestseller
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListOrders returns every order, newest first.
func (s *AdminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListAll(ctx)
}

// DeleteUser removes a non-admin user. Admin accounts cannot be deleted.
func (s *AdminService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.users.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return NotFoundf("user not found")
	}
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return InvalidStatef("cannot delete admin user")
	}
	return s.users.Delete(ctx, id)
}

func (s *AdminService) ToggleAdmin(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}

	user.IsAdmin = !user.IsAdmin
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// DashboardStats are the counts and revenue shown on the admin dashboard.
// Revenue sums totalPrice over paid orders only.
type DashboardStats struct {
	TotalUsers      int64   `json:"totalUsers"`
	TotalProducts   int64   `json:"totalProducts"`
	TotalOrders     int64   `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingOrders   int64   `json:"pendingOrders"`
	DeliveredOrders int64   `json:"deliveredOrders"`
}

func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var revenue float64
	for _, order := range orders {
		if order.IsPaid {
			revenue += order.TotalPrice
		}
	}

	pending, err := s.orders.CountByStatus(ctx, models.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	delivered, err := s.orders.CountByStatus(ctx, models.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:      totalUsers,
		TotalProducts:   totalProducts,
		TotalOrders:     totalOrders,
		TotalRevenue:    revenue,
		PendingOrders:   pending,
		DeliveredOrders: delivered,
	}, nil
}
