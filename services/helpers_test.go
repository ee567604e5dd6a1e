package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store/mocks"
)

type testStores struct {
	products *mocks.MemProductStore
	carts    *mocks.MemCartStore
	orders   *mocks.MemOrderStore
	users    *mocks.MemUserStore
}

func newTestStores() *testStores {
	return &testStores{
		products: mocks.NewMemProductStore(),
		carts:    mocks.NewMemCartStore(),
		orders:   mocks.NewMemOrderStore(),
		users:    mocks.NewMemUserStore(),
	}
}

func (ts *testStores) cartService() *CartService {
	return NewCartService(ts.carts, ts.products)
}

func (ts *testStores) orderService() *OrderService {
	return NewOrderService(ts.orders, ts.products, ts.carts)
}

func (ts *testStores) catalogService() *CatalogService {
	return NewCatalogService(ts.products)
}

func (ts *testStores) adminService() *AdminService {
	return NewAdminService(ts.products, ts.orders, ts.users)
}

// seedProduct inserts a product with sensible defaults, applying overrides.
func (ts *testStores) seedProduct(overrides func(*models.Product)) primitive.ObjectID {
	p := models.Product{
		ID:          primitive.NewObjectID(),
		Name:        "Classic Black T-Shirt",
		Description: "Premium cotton t-shirt",
		Price:       999,
		Images:      models.ProductImages{Flat: []string{"https://cdn.example/tee.jpg"}},
		Category:    "Men",
		Subcategory: "Casual",
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"Black", "White"},
		Stock:       10,
		Brand:       "StyleHub",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if overrides != nil {
		overrides(&p)
	}
	return ts.products.Seed(p)
}

func (ts *testStores) seedUser(name string, admin bool) *models.User {
	u := models.User{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Email:   name + "@example.com",
		IsAdmin: admin,
	}
	ts.users.Seed(u)
	return &u
}

func orderItemFor(productID primitive.ObjectID, name string, price float64, qty int) models.OrderItem {
	return models.OrderItem{
		ProductID: productID,
		Name:      name,
		Image:     "https://cdn.example/tee.jpg",
		Price:     price,
		Size:      "M",
		Color:     "Black",
		Qty:       qty,
	}
}

func testShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Street:  "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
		Phone:   "9876543210",
	}
}
