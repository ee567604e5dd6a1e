package services

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store"
)

// CheckoutSession is a hosted payment page created by the processor.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus is the processor's record of a checkout session, retrieved
// server side. PaymentStatus is "paid" once the customer completed payment.
type SessionStatus struct {
	ID            string
	PaymentStatus string
	TransactionID string
	Email         string
}

// CheckoutProvider is the external payment processor.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, order *models.Order) (*CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*SessionStatus, error)
}

// Mailer sends transactional mail. Implementations must be best-effort safe;
// the payment flow never fails on mail errors.
type Mailer interface {
	SendOrderConfirmation(to string, order *models.Order) error
}

// PaymentService hands order totals to the checkout provider and marks
// orders paid once the provider confirms. Payment success is only ever taken
// from the provider's own session record, never from client-supplied fields.
type PaymentService struct {
	orders    store.OrderStore
	orderSvc  *OrderService
	users     store.UserStore
	provider  CheckoutProvider
	mailer    Mailer // optional
}

func NewPaymentService(orders store.OrderStore, orderSvc *OrderService, users store.UserStore, provider CheckoutProvider, mailer Mailer) *PaymentService {
	return &PaymentService{
		orders:   orders,
		orderSvc: orderSvc,
		users:    users,
		provider: provider,
		mailer:   mailer,
	}
}

// CreateCheckoutHandoff builds a hosted checkout session for the order and
// returns the redirect URL.
func (s *PaymentService) CreateCheckoutHandoff(ctx context.Context, userID, orderID primitive.ObjectID) (string, error) {
	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return "", NotFoundf("order not found")
	}
	if err != nil {
		return "", err
	}
	if order.UserID != userID {
		return "", Forbiddenf("not authorized")
	}

	session, err := s.provider.CreateSession(ctx, order)
	if err != nil {
		return "", Upstream("failed to create checkout session", err)
	}
	return session.URL, nil
}

// Confirm verifies the session against the processor and, when it reports
// paid, marks the order paid. Confirming an already paid order is a no-op
// success via the MarkPaid guard.
func (s *PaymentService) Confirm(ctx context.Context, orderID primitive.ObjectID, sessionID string) (*models.Order, error) {
	if sessionID == "" {
		return nil, InvalidStatef("missing session ID")
	}

	session, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return nil, Upstream("failed to retrieve checkout session", err)
	}
	if session.PaymentStatus != "paid" {
		return nil, InvalidStatef("payment not completed")
	}

	order, err := s.orderSvc.MarkPaid(ctx, orderID, models.PaymentResult{
		TransactionID: session.TransactionID,
		Status:        session.PaymentStatus,
		Email:         session.Email,
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, order)

	return order, nil
}

func (s *PaymentService) sendConfirmation(ctx context.Context, order *models.Order) {
	if s.mailer == nil {
		return
	}
	user, err := s.users.Get(ctx, order.UserID)
	if err != nil {
		log.Printf("Failed to load user for order confirmation mail: %v", err)
		return
	}
	if err := s.mailer.SendOrderConfirmation(user.Email, order); err != nil {
		log.Printf("Failed to send order confirmation mail: %v", err)
	}
}
