package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"

	"github.com/minishoplabs/minishop-backend/pkg/config"
	"github.com/minishoplabs/minishop-backend/pkg/logger"
)

const (
	retryAttempts    = 2
	retryBaseBackoff = 200 * time.Millisecond
)

var errSecretKeyRequired = errors.New("stripe secret key is required")

// intentCreator is the slice of the Stripe API the gateway calls, kept
// narrow so tests can stub it.
type intentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeIntentAPI struct{}

func (stripeIntentAPI) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

// StripeGateway creates real payment intents against the Stripe API.
type StripeGateway struct {
	api     intentCreator
	timeout time.Duration
	logg    *logger.Logger
}

// NewStripeGateway initializes Stripe once with the configured secret key.
func NewStripeGateway(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*StripeGateway, error) {
	secretKey := strings.TrimSpace(cfg.SecretKey)
	if secretKey == "" {
		return nil, errSecretKeyRequired
	}

	stripe.Key = secretKey

	if logg != nil {
		logg.Info(ctx, "stripe gateway initialized")
	}

	return &StripeGateway{
		api:     stripeIntentAPI{},
		timeout: cfg.Timeout,
		logg:    logg,
	}, nil
}

// CreatePaymentIntent starts a payment for the given amount. Transient
// Stripe failures are retried a bounded number of times within the caller's
// deadline; every other failure surfaces immediately.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %d", amountCents)
	}
	currency = strings.TrimSpace(strings.ToLower(currency))
	if currency == "" {
		return nil, errors.New("payment currency is required")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	var result *stripe.PaymentIntent
	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBaseBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		intent, err := g.api.New(params)
		if err != nil {
			if isTransientStripeError(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = intent
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	return &Intent{
		ID:           result.ID,
		ClientSecret: result.ClientSecret,
		Status:       string(result.Status),
	}, nil
}

// isTransientStripeError reports whether a call is worth repeating. Server
// side and connection failures qualify, card declines and bad requests do
// not.
func isTransientStripeError(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	if stripeErr.Type == stripe.ErrorTypeAPI {
		return true
	}
	return stripeErr.HTTPStatusCode >= 500
}
