package api

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/humyn-ai/humyn/go/internal/user"
	"github.com/stripe/stripe-go/v84"
)

// BillingService is the slice of the Stripe wrapper the handlers need.
type BillingService interface {
	CreateCheckoutSession(ctx context.Context, customerEmail, successURL, cancelURL string) (*stripe.CheckoutSession, error)
	VerifyWebhookSignature(payload []byte, signature string) (*stripe.Event, error)
}

type EventReconciler interface {
	Reconcile(ctx context.Context, event *stripe.Event) error
}

type BillingHandler struct {
	billing    BillingService
	reconciler EventReconciler
	successURL string
	cancelURL  string
}

func NewBillingHandler(billing BillingService, reconciler EventReconciler, successURL, cancelURL string) *BillingHandler {
	return &BillingHandler{
		billing:    billing,
		reconciler: reconciler,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (h *BillingHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	account, ok := user.GetAccountFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, map[string]any{"error": "Access token required"})
		return
	}

	session, err := h.billing.CreateCheckoutSession(r.Context(), account.Email, h.successURL, h.cancelURL)
	if err != nil {
		log.Printf("Failed to create checkout session: %v", err)
		writeJSONError(w, http.StatusInternalServerError, map[string]any{"error": "Failed to create checkout session"})
		return
	}

	writeJSON(w, map[string]string{"url": session.URL})
}

func (h *BillingHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Failed to read webhook body: %v", err)
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	// Nothing in the payload is trusted before this check.
	signature := r.Header.Get("Stripe-Signature")
	event, err := h.billing.VerifyWebhookSignature(payload, signature)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	if err := h.reconciler.Reconcile(r.Context(), event); err != nil {
		log.Printf("Webhook %s handling failed: %v", event.Type, err)
		http.Error(w, "Webhook handling failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]bool{"received": true})
}
