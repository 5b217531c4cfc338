package payment

import (
	"errors"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/adityasampath/Imagify-Project/internal/pkg/env"
)

// RazorpayGateway wraps the embedded-checkout flow: the server creates an
// order, the client opens the Razorpay widget, and the widget's completion
// callback posts the payment identifiers back for verification.
type RazorpayGateway struct {
	KeyID     string
	KeySecret string

	client *razorpay.Client
}

// NewRazorpayGatewayFromEnv builds a gateway from RAZORPAY_KEY_ID /
// RAZORPAY_KEY_SECRET.
func NewRazorpayGatewayFromEnv() *RazorpayGateway {
	keyID := strings.TrimSpace(env.GetEnv("RAZORPAY_KEY_ID", ""))
	keySecret := strings.TrimSpace(env.GetEnv("RAZORPAY_KEY_SECRET", ""))

	g := &RazorpayGateway{
		KeyID:     keyID,
		KeySecret: keySecret,
	}
	if keyID != "" && keySecret != "" {
		g.client = razorpay.NewClient(keyID, keySecret)
	}
	return g
}

// CreateOrder creates a gateway order for the plan in INR. The returned map is
// the raw gateway order (id, amount, currency, receipt, ...) that the client
// widget needs verbatim.
func (g *RazorpayGateway) CreateOrder(plan Plan, receipt string) (map[string]interface{}, error) {
	if g.client == nil {
		return nil, errors.New("RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET are not configured")
	}

	data := map[string]interface{}{
		"amount":   plan.AmountPaise(),
		"currency": "INR",
		"receipt":  receipt,
		"notes": map[string]interface{}{
			"plan_id": plan.ID,
			"credits": plan.Credits,
		},
	}
	return g.client.Order.Create(data, nil)
}

// VerifySignature checks a checkout confirmation against the key secret.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyRazorpaySignature(orderID, paymentID, signature, g.KeySecret)
}
