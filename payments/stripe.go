// Package payments implements the checkout provider against Stripe's hosted
// checkout.
package payments

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/services"
)

// StripeProvider creates and retrieves hosted checkout sessions.
type StripeProvider struct {
	api         *client.API
	frontendURL string
	currency    string
}

func NewStripeProvider(secretKey, frontendURL string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{
		api:         api,
		frontendURL: frontendURL,
		currency:    "inr",
	}
}

// CreateSession builds the line-item manifest from the order snapshot, with
// unit amounts in minor currency units, and requests a hosted payment page.
func (p *StripeProvider) CreateSession(ctx context.Context, order *models.Order) (*services.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(int64(math.Round(item.Price * 100))),
			},
			Quantity: stripe.Int64(int64(item.Qty)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(fmt.Sprintf(
			"%s/payment-success?session_id={CHECKOUT_SESSION_ID}&orderId=%s",
			p.frontendURL, order.ID.Hex(),
		)),
		CancelURL: stripe.String(p.frontendURL + "/checkout"),
	}
	params.AddMetadata("orderId", order.ID.Hex())

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &services.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// GetSession retrieves the processor's own record of the session; payment
// status is only ever taken from here.
func (p *StripeProvider) GetSession(ctx context.Context, sessionID string) (*services.SessionStatus, error) {
	session, err := p.api.CheckoutSessions.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, err
	}

	status := &services.SessionStatus{
		ID:            session.ID,
		PaymentStatus: string(session.PaymentStatus),
	}
	if session.PaymentIntent != nil {
		status.TransactionID = session.PaymentIntent.ID
	}
	if session.CustomerDetails != nil {
		status.Email = session.CustomerDetails.Email
	}
	return status, nil
}
