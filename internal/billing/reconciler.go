package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/humyn-ai/humyn/go/internal/user"
	"github.com/stripe/stripe-go/v84"
)

// Accounts is the slice of the account repository the reconciler mutates.
type Accounts interface {
	UpgradeToPremium(ctx context.Context, email, stripeCustomerID, subscriptionID string) error
	DowngradeByEmail(ctx context.Context, email, subscriptionStatus string) error
	DowngradeBySubscriptionID(ctx context.Context, subscriptionID, subscriptionStatus string) error
}

// CustomerResolver maps a billing customer reference to an account email.
type CustomerResolver interface {
	CustomerEmail(ctx context.Context, customerID string) (string, error)
}

// Reconciler translates verified Stripe lifecycle events into account state
// transitions. Provider-pushed state is authoritative: any non-active signal
// downgrades to free so unpaid access is never granted. Events are applied by
// natural key (email or subscription ID), which makes replays idempotent.
type Reconciler struct {
	accounts  Accounts
	customers CustomerResolver
}

func NewReconciler(accounts Accounts, customers CustomerResolver) *Reconciler {
	return &Reconciler{
		accounts:  accounts,
		customers: customers,
	}
}

// Reconcile applies a single verified event. A missing account is logged and
// swallowed: billing events can race account state and must not crash the
// webhook handler. Unknown event types are no-ops.
func (r *Reconciler) Reconcile(ctx context.Context, event *stripe.Event) error {
	var err error
	switch event.Type {
	case "checkout.session.completed":
		err = r.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.deleted":
		err = r.handleSubscriptionDeleted(ctx, event)
	case "invoice.payment_failed":
		err = r.handlePaymentFailed(ctx, event)
	case "customer.subscription.updated":
		err = r.handleSubscriptionUpdated(ctx, event)
	default:
		log.Printf("Unhandled event type: %s", event.Type)
		return nil
	}

	if errors.Is(err, user.ErrNotFound) {
		log.Printf("No account matched event %s (%s), skipping", event.ID, event.Type)
		return nil
	}
	return err
}

func (r *Reconciler) handleCheckoutCompleted(ctx context.Context, event *stripe.Event) error {
	session, err := parseEventData[checkoutSession](event)
	if err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	email, err := r.customers.CustomerEmail(ctx, session.Customer)
	if err != nil {
		return err
	}

	if err := r.accounts.UpgradeToPremium(ctx, email, session.Customer, session.Subscription); err != nil {
		return err
	}

	log.Printf("Account %s upgraded to premium (subscription=%s)", email, session.Subscription)
	return nil
}

func (r *Reconciler) handleSubscriptionDeleted(ctx context.Context, event *stripe.Event) error {
	sub, err := parseEventData[subscriptionEvent](event)
	if err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}

	if err := r.accounts.DowngradeBySubscriptionID(ctx, sub.ID, "canceled"); err != nil {
		return err
	}

	log.Printf("Subscription %s canceled, account downgraded to free", sub.ID)
	return nil
}

func (r *Reconciler) handlePaymentFailed(ctx context.Context, event *stripe.Event) error {
	invoice, err := parseEventData[invoiceEvent](event)
	if err != nil {
		return fmt.Errorf("failed to parse invoice: %w", err)
	}

	email, err := r.customers.CustomerEmail(ctx, invoice.Customer)
	if err != nil {
		return err
	}

	if err := r.accounts.DowngradeByEmail(ctx, email, "payment_failed"); err != nil {
		return err
	}

	log.Printf("Account %s downgraded after failed payment on invoice %s", email, invoice.ID)
	return nil
}

func (r *Reconciler) handleSubscriptionUpdated(ctx context.Context, event *stripe.Event) error {
	sub, err := parseEventData[subscriptionEvent](event)
	if err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}

	// Only degraded statuses trigger a downgrade; other updates are
	// uninteresting. The provider status string is stored verbatim.
	if sub.Status != "past_due" && sub.Status != "unpaid" {
		return nil
	}

	email, err := r.customers.CustomerEmail(ctx, sub.Customer)
	if err != nil {
		return err
	}

	if err := r.accounts.DowngradeByEmail(ctx, email, sub.Status); err != nil {
		return err
	}

	log.Printf("Account %s downgraded due to %s", email, sub.Status)
	return nil
}

func parseEventData[T any](event *stripe.Event) (*T, error) {
	var data T
	if err := json.Unmarshal(event.Data.Raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

type checkoutSession struct {
	ID           string `json:"id"`
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
}

type subscriptionEvent struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
}

type invoiceEvent struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
}
