package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCart_FindItem(t *testing.T) {
	productA := primitive.NewObjectID()
	productB := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{
		{ID: primitive.NewObjectID(), ProductID: productA, Size: "M", Color: "Black"},
		{ID: primitive.NewObjectID(), ProductID: productA, Size: "L", Color: "Black"},
		{ID: primitive.NewObjectID(), ProductID: productB, Size: "M", Color: "Black"},
	}}

	assert.Equal(t, 0, cart.FindItem(productA, "M", "Black"))
	assert.Equal(t, 1, cart.FindItem(productA, "L", "Black"))
	assert.Equal(t, 2, cart.FindItem(productB, "M", "Black"))
	assert.Equal(t, -1, cart.FindItem(productA, "M", "White"), "color is part of the variant key")
	assert.Equal(t, -1, cart.FindItem(primitive.NewObjectID(), "M", "Black"))
}

func TestCart_RecomputeTotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Price: 999, Qty: 2},
		{Price: 1499, Qty: 1},
	}}
	cart.RecomputeTotal()
	assert.Equal(t, 999*2+1499.0, cart.TotalPrice)

	cart.Items = nil
	cart.RecomputeTotal()
	assert.Zero(t, cart.TotalPrice)
}
