package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store"
)

// OrderService materializes carts into immutable orders and drives the order
// status lifecycle. Stock is decremented at payment time, not at creation.
type OrderService struct {
	orders   store.OrderStore
	products store.ProductStore
	carts    store.CartStore
}

func NewOrderService(orders store.OrderStore, products store.ProductStore, carts store.CartStore) *OrderService {
	return &OrderService{orders: orders, products: products, carts: carts}
}

// CreateOrderInput carries everything the checkout page submits. Prices are
// trusted as provided; see the product-owner note in DESIGN.md.
type CreateOrderInput struct {
	Items           []models.OrderItem
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	ItemsPrice      float64
	ShippingPrice   float64
	TaxPrice        float64
	TotalPrice      float64
}

// Create persists a new Pending order after a pre-flight existence and stock
// check on every item. Nothing is reserved here.
func (s *OrderService) Create(ctx context.Context, userID primitive.ObjectID, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, InvalidStatef("no order items")
	}

	for _, item := range in.Items {
		product, err := s.products.Get(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFoundf("product not found: %s", item.Name)
		}
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Qty {
			return nil, InvalidStatef("insufficient stock for %s", item.Name)
		}
	}

	order := &models.Order{
		UserID:          userID,
		OrderItems:      in.Items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		ItemsPrice:      in.ItemsPrice,
		ShippingPrice:   in.ShippingPrice,
		TaxPrice:        in.TaxPrice,
		TotalPrice:      in.TotalPrice,
		OrderStatus:     models.OrderStatusPending,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns an order to its owner or to an admin.
func (s *OrderService) Get(ctx context.Context, requester *models.User, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("order not found")
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != requester.ID && !requester.IsAdmin {
		return nil, Forbiddenf("not authorized to view this order")
	}
	return order, nil
}

// ListMine returns the user's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// MarkPaid records the payment result, moves the order to Processing,
// decrements stock for every line item and clears the owner's cart. Calling
// it on an already paid order is a no-op success, so a repeated payment
// confirmation cannot decrement stock twice.
func (s *OrderService) MarkPaid(ctx context.Context, orderID primitive.ObjectID, result models.PaymentResult) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("order not found")
	}
	if err != nil {
		return nil, err
	}

	if order.IsPaid {
		return order, nil
	}
	if !order.OrderStatus.CanTransition(models.OrderStatusProcessing) {
		return nil, InvalidStatef("order cannot be paid in status %s", order.OrderStatus)
	}

	// Conditional decrements: each one fails rather than driving stock
	// negative. The writes are still independent, so a failure partway
	// leaves earlier decrements in place.
	for _, item := range order.OrderItems {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Qty); err != nil {
			if errors.Is(err, store.ErrInsufficientStock) {
				return nil, InvalidStatef("insufficient stock for %s", item.Name)
			}
			if errors.Is(err, store.ErrNotFound) {
				return nil, NotFoundf("product not found: %s", item.Name)
			}
			return nil, err
		}
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &result
	order.OrderStatus = models.OrderStatusProcessing
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.clearCart(ctx, order.UserID)

	return order, nil
}

// clearCart empties the purchaser's cart; failure is logged, never surfaced.
func (s *OrderService) clearCart(ctx context.Context, userID primitive.ObjectID) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("Failed to load cart for clearing after payment: %v", err)
		return
	}
	cart.Items = []models.CartItem{}
	cart.RecomputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		log.Printf("Failed to clear cart after payment: %v", err)
	}
}

// Cancel moves an order to Cancelled. Only the owner may cancel, and only
// before shipping. Stock is restored only when the order had been paid,
// because stock is only taken at payment time.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("order not found")
	}
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, Forbiddenf("not authorized to cancel this order")
	}
	if !order.OrderStatus.CanTransition(models.OrderStatusCancelled) {
		return nil, InvalidStatef("cannot cancel order in status %s", order.OrderStatus)
	}

	order.OrderStatus = models.OrderStatusCancelled

	if order.IsPaid {
		for _, item := range order.OrderItems {
			if err := s.products.IncrementStock(ctx, item.ProductID, item.Qty); err != nil {
				log.Printf("Failed to restore stock for product %s: %v", item.ProductID.Hex(), err)
			}
		}
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus is the administrator path for moving an order along its
// lifecycle. Delivered additionally stamps the delivery fields.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, InvalidStatef("unknown order status %q", status)
	}

	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundf("order not found")
	}
	if err != nil {
		return nil, err
	}

	if !order.OrderStatus.CanTransition(status) {
		return nil, InvalidStatef("cannot move order from %s to %s", order.OrderStatus, status)
	}

	order.OrderStatus = status
	if status == models.OrderStatusDelivered {
		now := time.Now()
		order.IsDelivered = true
		order.DeliveredAt = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
