package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
)

type fakeProvider struct {
	sessions    map[string]*SessionStatus
	createErr   error
	getErr      error
	lastCreated *models.Order
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: map[string]*SessionStatus{}}
}

func (f *fakeProvider) CreateSession(ctx context.Context, order *models.Order) (*CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastCreated = order
	return &CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (f *fakeProvider) GetSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return session, nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) SendOrderConfirmation(to string, order *models.Order) error {
	f.sent = append(f.sent, to)
	return nil
}

func (ts *testStores) paymentService(provider CheckoutProvider, mailer Mailer) *PaymentService {
	return NewPaymentService(ts.orders, ts.orderService(), ts.users, provider, mailer)
}

func TestPaymentService_CreateCheckoutHandoff(t *testing.T) {
	ts := newTestStores()
	provider := newFakeProvider()
	svc := ts.paymentService(provider, nil)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(nil)

	order, err := ts.orderService().Create(ctx, userID, CreateOrderInput{
		Items: []models.OrderItem{orderItemFor(productID, "Classic Black T-Shirt", 999, 1)},
	})
	require.NoError(t, err)

	url, err := svc.CreateCheckoutHandoff(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_test_1", url)
	assert.Equal(t, order.ID, provider.lastCreated.ID)

	_, err = svc.CreateCheckoutHandoff(ctx, primitive.NewObjectID(), order.ID)
	assert.True(t, IsForbidden(err), "only the owner can start checkout")

	_, err = svc.CreateCheckoutHandoff(ctx, userID, primitive.NewObjectID())
	assert.True(t, IsNotFound(err))

	provider.createErr = errors.New("stripe is down")
	_, err = svc.CreateCheckoutHandoff(ctx, userID, order.ID)
	assert.True(t, IsUpstream(err))
}

func TestPaymentService_Confirm(t *testing.T) {
	ts := newTestStores()
	provider := newFakeProvider()
	mailer := &fakeMailer{}
	svc := ts.paymentService(provider, mailer)
	ctx := context.Background()

	buyer := ts.seedUser("buyer", false)
	productID := ts.seedProduct(nil)

	order, err := ts.orderService().Create(ctx, buyer.ID, CreateOrderInput{
		Items: []models.OrderItem{orderItemFor(productID, "Classic Black T-Shirt", 999, 2)},
	})
	require.NoError(t, err)

	provider.sessions["cs_paid"] = &SessionStatus{
		ID:            "cs_paid",
		PaymentStatus: "paid",
		TransactionID: "pi_abc",
		Email:         "buyer@example.com",
	}

	paid, err := svc.Confirm(ctx, order.ID, "cs_paid")
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaymentResult)
	assert.Equal(t, "pi_abc", paid.PaymentResult.TransactionID)
	assert.Equal(t, "buyer@example.com", paid.PaymentResult.Email)

	product, err := ts.products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 8, product.Stock)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, buyer.Email, mailer.sent[0])
}

func TestPaymentService_Confirm_DoubleConfirm(t *testing.T) {
	ts := newTestStores()
	provider := newFakeProvider()
	svc := ts.paymentService(provider, nil)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(nil)

	order, err := ts.orderService().Create(ctx, userID, CreateOrderInput{
		Items: []models.OrderItem{orderItemFor(productID, "Classic Black T-Shirt", 999, 2)},
	})
	require.NoError(t, err)

	provider.sessions["cs_paid"] = &SessionStatus{ID: "cs_paid", PaymentStatus: "paid", TransactionID: "pi_abc"}

	_, err = svc.Confirm(ctx, order.ID, "cs_paid")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, order.ID, "cs_paid")
	require.NoError(t, err)

	product, err := ts.products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 8, product.Stock, "a replayed confirmation must not decrement stock again")
}

func TestPaymentService_Confirm_Rejections(t *testing.T) {
	ts := newTestStores()
	provider := newFakeProvider()
	svc := ts.paymentService(provider, nil)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := ts.seedProduct(nil)

	order, err := ts.orderService().Create(ctx, userID, CreateOrderInput{
		Items: []models.OrderItem{orderItemFor(productID, "Classic Black T-Shirt", 999, 1)},
	})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, order.ID, "")
	assert.True(t, IsInvalidState(err))

	// An abandoned session the customer never paid.
	provider.sessions["cs_unpaid"] = &SessionStatus{ID: "cs_unpaid", PaymentStatus: "unpaid"}
	_, err = svc.Confirm(ctx, order.ID, "cs_unpaid")
	assert.True(t, IsInvalidState(err))

	_, err = svc.Confirm(ctx, order.ID, "cs_unknown")
	assert.True(t, IsUpstream(err))

	// Nothing above may have marked the order paid.
	got, err := ts.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPaid)
	product, err := ts.products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 10, product.Stock)
}
