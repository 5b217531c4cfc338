package payment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"

	"github.com/adityasampath/Imagify-Project/internal/pkg/env"
)

// StripeGateway wraps the redirect-based checkout flow: the server creates a
// hosted Checkout session and the client is redirected to its URL.
type StripeGateway struct {
	SecretKey   string
	FrontendURL string
}

// NewStripeGatewayFromEnv builds a gateway from STRIPE_SECRET_KEY and
// FRONTEND_URL.
func NewStripeGatewayFromEnv() *StripeGateway {
	return &StripeGateway{
		SecretKey:   strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		FrontendURL: strings.TrimRight(env.GetEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
	}
}

// CreateCheckoutSession creates a one-time payment session for the plan in USD
// and returns the session id and hosted payment URL.
func (g *StripeGateway) CreateCheckoutSession(plan Plan) (id string, url string, err error) {
	if g.SecretKey == "" {
		return "", "", errors.New("STRIPE_SECRET_KEY is not configured")
	}
	stripe.Key = g.SecretKey

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("%s Plan - %d Credits", plan.ID, plan.Credits)),
						Description: stripe.String(plan.Desc),
					},
					UnitAmount: stripe.Int64(plan.AmountCents()),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.FrontendURL + "/verify?success=true&orderId={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.FrontendURL + "/verify?success=false&orderId={CHECKOUT_SESSION_ID}"),
	}

	s, err := session.New(params)
	if err != nil {
		return "", "", err
	}
	return s.ID, s.URL, nil
}
