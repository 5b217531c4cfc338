package payment

import (
	"errors"
	"strings"
)

// ErrUnknownPlan is returned for plan ids outside the static plan table.
var ErrUnknownPlan = errors.New("unknown credit plan")

// Plan is one purchasable credit bundle. Prices are whole units; the gateway
// helpers convert to the smallest unit of their currency.
type Plan struct {
	ID       string
	Desc     string
	Credits  int
	PriceINR int64
	PriceUSD int64
}

var plans = []Plan{
	{ID: "Basic", Desc: "Best for personal use.", Credits: 100, PriceINR: 10, PriceUSD: 10},
	{ID: "Advanced", Desc: "Best for business use.", Credits: 500, PriceINR: 50, PriceUSD: 50},
	{ID: "Business", Desc: "Best for enterprise use.", Credits: 5000, PriceINR: 250, PriceUSD: 250},
}

// Plans returns the static plan table.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// FindPlan resolves a plan id case-insensitively.
func FindPlan(id string) (Plan, error) {
	needle := strings.TrimSpace(id)
	for _, p := range plans {
		if strings.EqualFold(p.ID, needle) {
			return p, nil
		}
	}
	return Plan{}, ErrUnknownPlan
}

// AmountPaise is the Razorpay order amount for this plan.
func (p Plan) AmountPaise() int64 {
	return p.PriceINR * 100
}

// AmountCents is the Stripe line item amount for this plan.
func (p Plan) AmountCents() int64 {
	return p.PriceUSD * 100
}
