package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
)

func TestCartService_GetOrCreate_LazyCreate(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	cart, err := svc.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)

	// Second call returns the same cart, not a new one.
	again, err := svc.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestCartService_AddItem_SnapshotsProduct(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	productID := ts.seedProduct(func(p *models.Product) {
		p.Price = 999
		p.DiscountPrice = 799
	})

	cart, err := svc.AddItem(ctx, userID, productID, "M", "Black", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	assert.Equal(t, "Classic Black T-Shirt", item.Name)
	assert.Equal(t, "https://cdn.example/tee.jpg", item.Image)
	assert.Equal(t, 799.0, item.Price, "discount price wins when set")
	assert.Equal(t, 2, item.Qty)
	assert.False(t, item.ID.IsZero())
	assert.Equal(t, 1598.0, cart.TotalPrice)
}

func TestCartService_AddItem_MergesSameVariant(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(nil)

	_, err := svc.AddItem(ctx, userID, productID, "M", "Black", 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, userID, productID, "M", "Black", 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "same variant must merge, not duplicate")
	assert.Equal(t, 5, cart.Items[0].Qty)
	assert.Equal(t, 5*999.0, cart.TotalPrice)
}

func TestCartService_AddItem_DifferentVariantsStaySeparate(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(nil)

	_, err := svc.AddItem(ctx, userID, productID, "M", "Black", 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, userID, productID, "L", "Black", 1)
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestCartService_AddItem_InsufficientStock(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(func(p *models.Product) { p.Stock = 1 })

	_, err := svc.AddItem(ctx, userID, productID, "M", "Black", 2)
	assert.True(t, IsInvalidState(err))
}

// A repeat add of the same variant increments past the single-add stock
// check: stock=5 admits 3+3=6. The merge path does not re-check the combined
// quantity; the conditional decrement at payment time is the backstop.
func TestCartService_AddItem_MergeSkipsStockRecheck(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(func(p *models.Product) { p.Stock = 5 })

	_, err := svc.AddItem(ctx, userID, productID, "M", "Black", 3)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, userID, productID, "M", "Black", 3)
	require.NoError(t, err)
	assert.Equal(t, 6, cart.Items[0].Qty)
}

func TestCartService_AddItem_ProductMissing(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()

	_, err := svc.AddItem(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "M", "Black", 1)
	assert.True(t, IsNotFound(err))
}

func TestCartService_AddItem_ImageResolution(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()

	tests := []struct {
		name      string
		images    models.ProductImages
		color     string
		wantImage string
		wantErr   bool
	}{
		{
			name:      "flat list uses first entry",
			images:    models.ProductImages{Flat: []string{"flat-1.jpg", "flat-2.jpg"}},
			color:     "Black",
			wantImage: "flat-1.jpg",
		},
		{
			name: "color map uses requested color",
			images: models.ProductImages{ByColor: map[string][]string{
				"Black": {"black-1.jpg"},
				"White": {"white-1.jpg"},
			}},
			color:     "White",
			wantImage: "white-1.jpg",
		},
		{
			name: "missing color falls back to first color key",
			images: models.ProductImages{ByColor: map[string][]string{
				"Black": {"black-1.jpg"},
				"White": {"white-1.jpg"},
			}},
			color:     "Red",
			wantImage: "black-1.jpg",
		},
		{
			name:    "no image anywhere is rejected",
			images:  models.ProductImages{ByColor: map[string][]string{}},
			color:   "Black",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := primitive.NewObjectID()
			productID := ts.seedProduct(func(p *models.Product) { p.Images = tt.images })

			cart, err := svc.AddItem(ctx, userID, productID, "M", tt.color, 1)
			if tt.wantErr {
				assert.True(t, IsInvalidState(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantImage, cart.Items[0].Image)
		})
	}
}

func TestCartService_UpdateItemQty(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(func(p *models.Product) { p.Stock = 5 })

	cart, err := svc.AddItem(ctx, userID, productID, "M", "Black", 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItemQty(ctx, userID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Qty)
	assert.Equal(t, 4*999.0, cart.TotalPrice)

	// Checked against the product's current stock, not add-time stock.
	_, err = svc.UpdateItemQty(ctx, userID, itemID, 6)
	assert.True(t, IsInvalidState(err))

	_, err = svc.UpdateItemQty(ctx, userID, primitive.NewObjectID(), 1)
	assert.True(t, IsNotFound(err))

	_, err = svc.UpdateItemQty(ctx, primitive.NewObjectID(), itemID, 1)
	assert.True(t, IsNotFound(err), "missing cart is NotFound")
}

func TestCartService_RemoveItem(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(nil)

	cart, err := svc.AddItem(ctx, userID, productID, "M", "Black", 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.RemoveItem(ctx, userID, itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)

	// Removing a missing item from an existing cart is a silent no-op.
	_, err = svc.RemoveItem(ctx, userID, primitive.NewObjectID())
	assert.NoError(t, err)

	// A missing cart is not.
	_, err = svc.RemoveItem(ctx, primitive.NewObjectID(), itemID)
	assert.True(t, IsNotFound(err))
}

func TestCartService_Clear(t *testing.T) {
	ts := newTestStores()
	svc := ts.cartService()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(nil)

	_, err := svc.AddItem(ctx, userID, productID, "M", "Black", 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, userID))

	cart, err := svc.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)

	assert.True(t, IsNotFound(svc.Clear(ctx, primitive.NewObjectID())))
}
