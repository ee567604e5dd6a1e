package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store"
)

// CartService manages the single per-user cart. Line items snapshot the
// product's name, image and price at add time; totals are recomputed before
// every persist.
type CartService struct {
	carts    store.CartStore
	products store.ProductStore
}

func NewCartService(carts store.CartStore, products store.ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetOrCreate returns the user's cart, creating an empty one on first access.
func (s *CartService) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
		if insertErr := s.carts.Insert(ctx, cart); insertErr != nil {
			// Lost the create race; the other writer's cart wins.
			if errors.Is(insertErr, store.ErrDuplicate) {
				return s.carts.GetByUser(ctx, userID)
			}
			return nil, insertErr
		}
		return cart, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem appends a line item, or increments the quantity when the same
// (product, size, color) variant is already in the cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, size, color string, qty int) (*models.Cart, error) {
	if size == "" || color == "" || qty < 1 {
		return nil, InvalidStatef("please provide all required fields")
	}

	product, err := s.products.Get(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("product not found")
	}
	if err != nil {
		return nil, err
	}

	if product.Stock < qty {
		return nil, InvalidStatef("insufficient stock")
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItem(productID, size, color); i >= 0 {
		cart.Items[i].Qty += qty
	} else {
		image, ok := product.Images.Resolve(color)
		if !ok {
			return nil, InvalidStatef("product does not have a valid image")
		}
		cart.Items = append(cart.Items, models.CartItem{
			ID:        primitive.NewObjectID(),
			ProductID: productID,
			Name:      product.Name,
			Image:     image,
			Price:     product.EffectivePrice(),
			Size:      size,
			Color:     color,
			Qty:       qty,
		})
	}

	cart.RecomputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItemQty sets a line item's quantity, checking against the product's
// current stock.
func (s *CartService) UpdateItemQty(ctx context.Context, userID, itemID primitive.ObjectID, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, InvalidStatef("quantity must be at least 1")
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("cart not found")
	}
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, item := range cart.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NotFoundf("item not found in cart")
	}

	product, err := s.products.Get(ctx, cart.Items[idx].ProductID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("product not found")
	}
	if err != nil {
		return nil, err
	}
	if product.Stock < qty {
		return nil, InvalidStatef("insufficient stock")
	}

	cart.Items[idx].Qty = qty
	cart.RecomputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes a line item. Removing an item that is not in the cart is
// a no-op; only a missing cart is an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("cart not found")
	}
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	cart.RecomputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart without deleting it.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return NotFoundf("cart not found")
	}
	if err != nil {
		return err
	}

	cart.Items = []models.CartItem{}
	cart.RecomputeTotal()
	return s.carts.Save(ctx, cart)
}
