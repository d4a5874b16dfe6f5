package account

import "net/url"

// defaultCheckoutKind is assumed when the checkout link omits the kind.
const defaultCheckoutKind = "subscription"

// CheckoutIntent is the auto-checkout request carried in the account page
// URL after a plan click on the pricing page.
type CheckoutIntent struct {
	PriceID   string
	PlanName  string
	PlanPrice string
	Kind      string
}

// ParseCheckoutQuery extracts a checkout intent from query parameters.
// The feature requires checkout=true plus the price ID, plan name, and plan
// price; anything less returns ok=false and the caller skips checkout
// silently. Values arrive URL-decoded via url.Values.
func ParseCheckoutQuery(q url.Values) (CheckoutIntent, bool) {
	if q.Get("checkout") != "true" {
		return CheckoutIntent{}, false
	}
	priceID := q.Get("priceId")
	planName := q.Get("planName")
	planPrice := q.Get("planPrice")
	if priceID == "" || planName == "" || planPrice == "" {
		return CheckoutIntent{}, false
	}
	kind := q.Get("kind")
	if kind == "" {
		kind = defaultCheckoutKind
	}
	return CheckoutIntent{
		PriceID:   priceID,
		PlanName:  planName,
		PlanPrice: planPrice,
		Kind:      kind,
	}, true
}
