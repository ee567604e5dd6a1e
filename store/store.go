// Package store defines the persistence interfaces and their MongoDB
// implementations. Services depend on the interfaces only.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
)

var (
	// ErrNotFound means no document matched the given id or filter.
	ErrNotFound = errors.New("store: not found")
	// ErrInsufficientStock means a conditional stock decrement found less
	// stock than requested.
	ErrInsufficientStock = errors.New("store: insufficient stock")
	// ErrDuplicate means a uniqueness constraint was violated.
	ErrDuplicate = errors.New("store: duplicate")
)

// ProductSort selects the order of a catalog listing.
type ProductSort string

const (
	SortNewest    ProductSort = ""
	SortPriceAsc  ProductSort = "price-asc"
	SortPriceDesc ProductSort = "price-desc"
	SortRating    ProductSort = "rating"
)

// ProductFilter is the conjunctive catalog filter. Zero values mean "no
// constraint" except Bestseller, which filters only when true.
type ProductFilter struct {
	Category    string
	Subcategory string
	Size        string
	Color       string
	MinPrice    *float64
	MaxPrice    *float64
	Bestseller  bool
	Keyword     string
}

type ProductStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter, page, pageSize int, sort ProductSort) ([]models.Product, int64, error)
	ListBestsellers(ctx context.Context, limit int) ([]models.Product, error)
	ListNewest(ctx context.Context, limit int) ([]models.Product, error)
	ListRelated(ctx context.Context, category, subcategory string, exclude primitive.ObjectID, limit int) ([]models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DecrementStock atomically decrements stock by qty only when at least
	// qty is available, returning ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	// IncrementStock unconditionally restores qty units of stock.
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	Count(ctx context.Context) (int64, error)
}

type CartStore interface {
	// GetByUser returns the user's cart or ErrNotFound.
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Insert(ctx context.Context, c *models.Cart) error
	// Save replaces the cart's items and derived total.
	Save(ctx context.Context, c *models.Cart) error
}

type OrderStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Insert(ctx context.Context, o *models.Order) error
	Update(ctx context.Context, o *models.Order) error
	// ListByUser returns the user's orders newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// ListAll returns every order newest first.
	ListAll(ctx context.Context) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
}

type UserStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListAll(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}
