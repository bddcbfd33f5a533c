// AngelaMos | 2026
// gateway.go

package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"github.com/carterperez-dev/coursehub/internal/config"
)

// IntentCreator produces a client secret the frontend uses to confirm a card
// payment before calling settlement.
type IntentCreator interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

type StripeGateway struct {
	currency string
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	stripe.Key = cfg.SecretKey

	return &StripeGateway{currency: cfg.Currency}
}

func (g *StripeGateway) CreateIntent(
	ctx context.Context,
	price float64,
) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(toMinorUnits(price)),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	return intent.ClientSecret, nil
}

// toMinorUnits converts a decimal price into the integer minor units Stripe
// expects, e.g. 19.99 USD becomes 1999 cents.
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
