package services

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store"
)

const (
	defaultPageSize = 12
	featuredLimit   = 8
	relatedLimit    = 4
)

// CatalogService serves product browsing, filtering and reviews.
type CatalogService struct {
	products store.ProductStore
}

func NewCatalogService(products store.ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// ProductPage is one page of a filtered catalog listing.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int64            `json:"total"`
}

// List applies the conjunctive filter and returns the requested page.
func (s *CatalogService) List(ctx context.Context, filter store.ProductFilter, page, pageSize int, sort store.ProductSort) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	products, total, err := s.products.List(ctx, filter, page, pageSize, sort)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products: products,
		Page:     page,
		Pages:    int(math.Ceil(float64(total) / float64(pageSize))),
		Total:    total,
	}, nil
}

func (s *CatalogService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("product not found")
	}
	return product, err
}

// Related returns up to four products sharing the category and subcategory.
func (s *CatalogService) Related(ctx context.Context, id primitive.ObjectID) ([]models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.products.ListRelated(ctx, product.Category, product.Subcategory, product.ID, relatedLimit)
}

func (s *CatalogService) Bestsellers(ctx context.Context) ([]models.Product, error) {
	return s.products.ListBestsellers(ctx, featuredLimit)
}

func (s *CatalogService) Featured(ctx context.Context) ([]models.Product, error) {
	return s.products.ListNewest(ctx, featuredLimit)
}

// AddReview appends one review per user and recomputes the derived rating
// fields. A second review from the same user is rejected, not merged.
func (s *CatalogService) AddReview(ctx context.Context, user *models.User, productID primitive.ObjectID, rating float64, comment string) (*models.Product, error) {
	if rating < 1 || rating > 5 {
		return nil, InvalidStatef("rating must be between 1 and 5")
	}
	if comment == "" {
		return nil, InvalidStatef("please provide a comment")
	}

	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	for _, review := range product.Reviews {
		if review.UserID == user.ID {
			return nil, InvalidStatef("you have already reviewed this product")
		}
	}

	product.Reviews = append(product.Reviews, models.Review{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Name:      user.Name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	})
	product.RecomputeRatings()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
