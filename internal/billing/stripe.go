package billing

import (
	"context"
	"fmt"

	"github.com/humyn-ai/humyn/go/internal/config"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"
)

const (
	premiumPriceCents  = 999
	premiumProductName = "Humyn Premium"
	premiumProductDesc = "Unlimited humanizations and premium features"
)

type Billing struct {
	sc            *stripe.Client
	webhookSecret string
}

func NewBilling(cfg *config.Config) *Billing {
	sc := stripe.NewClient(cfg.StripeSecretKey)
	return &Billing{
		sc:            sc,
		webhookSecret: cfg.StripeWebhookSecret,
	}
}

// CreateCheckoutSession starts a Stripe-hosted subscription checkout for the
// $9.99/mo premium plan.
func (b *Billing) CreateCheckoutSession(ctx context.Context, customerEmail, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionCreateParams{
		PaymentMethodTypes: []*string{stripe.String("card")},
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name:        stripe.String(premiumProductName),
						Description: stripe.String(premiumProductDesc),
					},
					UnitAmount: stripe.Int64(premiumPriceCents),
					Recurring: &stripe.CheckoutSessionCreateLineItemPriceDataRecurringParams{
						Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:    stripe.String(successURL),
		CancelURL:     stripe.String(cancelURL),
		CustomerEmail: stripe.String(customerEmail),
	}
	return b.sc.V1CheckoutSessions.Create(ctx, params)
}

// CustomerEmail resolves a Stripe customer ID to the email the customer was
// created with. Used by the webhook reconciler to find the account.
func (b *Billing) CustomerEmail(ctx context.Context, customerID string) (string, error) {
	customer, err := b.sc.V1Customers.Retrieve(ctx, customerID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve customer %s: %w", customerID, err)
	}
	return customer.Email, nil
}

// VerifyWebhookSignature checks the Stripe-Signature header against the
// shared webhook secret. Nothing in the payload is trusted before this.
func (b *Billing) VerifyWebhookSignature(payload []byte, signature string) (*stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, b.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}
	return &event, nil
}
