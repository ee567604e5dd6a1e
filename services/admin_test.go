package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
)

func validCreateProductInput() CreateProductInput {
	return CreateProductInput{
		Name:        "Denim Jacket",
		Description: "Stonewashed denim jacket",
		Price:       3499,
		Images:      models.ProductImages{Flat: []string{"https://cdn.example/jacket.jpg"}},
		Category:    "Men",
		Subcategory: "Casual",
		Sizes:       []string{"M", "L"},
		Colors:      []string{"Blue"},
		Stock:       20,
	}
}

func TestAdminService_CreateProduct(t *testing.T) {
	ts := newTestStores()
	svc := ts.adminService()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, validCreateProductInput())
	require.NoError(t, err)
	assert.False(t, product.ID.IsZero())
	assert.Equal(t, "StyleHub", product.Brand, "brand defaults when omitted")
	assert.NotNil(t, product.Reviews)

	tests := []struct {
		name   string
		mutate func(*CreateProductInput)
	}{
		{"missing name", func(in *CreateProductInput) { in.Name = "" }},
		{"negative price", func(in *CreateProductInput) { in.Price = -1 }},
		{"unknown category", func(in *CreateProductInput) { in.Category = "Pets" }},
		{"unknown subcategory", func(in *CreateProductInput) { in.Subcategory = "Swimwear" }},
		{"no images", func(in *CreateProductInput) { in.Images = models.ProductImages{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateProductInput()
			tt.mutate(&in)
			_, err := svc.CreateProduct(ctx, in)
			assert.True(t, IsInvalidState(err))
		})
	}
}

func TestAdminService_UpdateProduct(t *testing.T) {
	ts := newTestStores()
	svc := ts.adminService()
	ctx := context.Background()
	productID := ts.seedProduct(nil)

	newName := "Renamed Tee"
	newPrice := 1299.0
	updated, err := svc.UpdateProduct(ctx, productID, UpdateProductInput{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Tee", updated.Name)
	assert.Equal(t, 1299.0, updated.Price)
	assert.Equal(t, "Premium cotton t-shirt", updated.Description, "omitted fields keep their value")

	badPrice := -5.0
	_, err = svc.UpdateProduct(ctx, productID, UpdateProductInput{Price: &badPrice})
	assert.True(t, IsInvalidState(err))

	badCategory := "Pets"
	_, err = svc.UpdateProduct(ctx, productID, UpdateProductInput{Category: &badCategory})
	assert.True(t, IsInvalidState(err))

	_, err = svc.UpdateProduct(ctx, primitive.NewObjectID(), UpdateProductInput{Name: &newName})
	assert.True(t, IsNotFound(err))
}

func TestAdminService_DeleteProduct(t *testing.T) {
	ts := newTestStores()
	svc := ts.adminService()
	ctx := context.Background()
	productID := ts.seedProduct(nil)

	require.NoError(t, svc.DeleteProduct(ctx, productID))
	assert.True(t, IsNotFound(svc.DeleteProduct(ctx, productID)))
}

func TestAdminService_ToggleBestseller(t *testing.T) {
	ts := newTestStores()
	svc := ts.adminService()
	ctx := context.Background()
	productID := ts.seedProduct(nil)

	product, err := svc.ToggleBestseller(ctx, productID)
	require.NoError(t, err)
	assert.True(t, product.IsBestseller)

	product, err = svc.ToggleBestseller(ctx, productID)
	require.NoError(t, err)
	assert.False(t, product.IsBestseller)
}

func TestAdminService_DeleteUser(t *testing.T) {
	ts := newTestStores()
	svc := ts.adminService()
	ctx := context.Background()

	customer := ts.seedUser("customer", false)
	admin := ts.seedUser("root", true)

	require.NoError(t, svc.DeleteUser(ctx, customer.ID))

	err := svc.DeleteUser(ctx, admin.ID)
	assert.True(t, IsInvalidState(err), "admin accounts cannot be deleted")

	assert.True(t, IsNotFound(svc.DeleteUser(ctx, primitive.NewObjectID())))
}

func TestAdminService_ToggleAdmin(t *testing.T) {
	ts := newTestStores()
	svc := ts.adminService()
	ctx := context.Background()
	customer := ts.seedUser("customer", false)

	user, err := svc.ToggleAdmin(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.Empty(t, user.Password)

	user, err = svc.ToggleAdmin(ctx, customer.ID)
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}

func TestAdminService_Stats(t *testing.T) {
	ts := newTestStores()
	svc := ts.adminService()
	orderSvc := ts.orderService()
	ctx := context.Background()

	buyer := ts.seedUser("buyer", false)
	ts.seedUser("browser", false)
	productID := ts.seedProduct(func(p *models.Product) { p.Stock = 100 })
	ts.seedProduct(func(p *models.Product) { p.Name = "Second Product" })

	// One paid and delivered order, one that never gets paid.
	paid, err := orderSvc.Create(ctx, buyer.ID, CreateOrderInput{
		Items:      []models.OrderItem{orderItemFor(productID, "Classic Black T-Shirt", 999, 1)},
		TotalPrice: 1099,
	})
	require.NoError(t, err)
	_, err = orderSvc.MarkPaid(ctx, paid.ID, models.PaymentResult{Status: "paid"})
	require.NoError(t, err)
	_, err = orderSvc.UpdateStatus(ctx, paid.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	_, err = orderSvc.UpdateStatus(ctx, paid.ID, models.OrderStatusDelivered)
	require.NoError(t, err)

	_, err = orderSvc.Create(ctx, buyer.ID, CreateOrderInput{
		Items:      []models.OrderItem{orderItemFor(productID, "Classic Black T-Shirt", 999, 2)},
		TotalPrice: 2198,
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, 1099.0, stats.TotalRevenue, "revenue counts paid orders only")
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.DeliveredOrders)
}
