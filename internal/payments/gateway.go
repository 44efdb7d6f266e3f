package payments

import "context"

// Intent is the gateway-agnostic result of starting a payment.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Gateway starts a payment for an order total expressed in minor currency
// units. A nil Gateway selects the simulated checkout path.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
}
