package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem snapshots the product's name, image and price at add time; only
// the quantity is live.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	Size      string             `bson:"size" json:"size"`
	Color     string             `bson:"color" json:"color"`
	Qty       int                `bson:"qty" json:"qty"`
}

// Cart holds at most one line item per (product, size, color) variant.
// There is exactly one cart per user, created lazily.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user" json:"user"`
	Items      []CartItem         `bson:"items" json:"items"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FindItem returns the index of the line item matching the variant, or -1.
func (c *Cart) FindItem(productID primitive.ObjectID, size, color string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Size == size && item.Color == color {
			return i
		}
	}
	return -1
}

// RecomputeTotal refreshes the derived totalPrice field. Called before every
// persist.
func (c *Cart) RecomputeTotal() {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Qty)
	}
	c.TotalPrice = total
}
