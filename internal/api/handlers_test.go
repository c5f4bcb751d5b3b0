package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/humyn-ai/humyn/go/internal/api"
	"github.com/humyn-ai/humyn/go/internal/audit"
	"github.com/humyn-ai/humyn/go/internal/entitlement"
	"github.com/humyn-ai/humyn/go/internal/humanize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
)

const modelOutput = `{
	"output_variants": [
		{"variant_id": "v1", "tone": "Conversational", "text": "Hey, quick update on the launch!"}
	],
	"changelog": ["shortened sentences", "warmer greeting"],
	"style_profile": {
		"tone": "Conversational",
		"formality": "Medium",
		"audience": "general",
		"personalization_tokens_used": [],
		"imperfection_level": "low"
	},
	"disclosure": "This text was refined with AI assistance.",
	"confidence_score": 0.9
}`

type stubGenerator struct {
	output string
	err    error
}

func (g *stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	return g.output, g.err
}

type stubUsageStore struct{}

func (s *stubUsageStore) IncrementUsage(_ context.Context, _ string) error { return nil }

func newHumanizeHandler(gen humanize.TextGenerator) *api.HumanizeHandler {
	svc := humanize.NewService(gen, entitlement.NewLedger(&stubUsageStore{}))
	auditLog := audit.NewLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return api.NewHumanizeHandler(svc, auditLog)
}

func TestHumanizeHandler_Anonymous(t *testing.T) {
	handler := newHumanizeHandler(&stubGenerator{output: modelOutput})

	body := `{"source_text": "Please review the attached quarterly report."}`
	req := httptest.NewRequest(http.MethodPost, "/api/humanize", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Humanize(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "output_variants")
	assert.Contains(t, rec.Body.String(), "quick update on the launch")
}

func TestHumanizeHandler_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "empty source text",
			body:       `{"source_text": "   "}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Source text is required",
		},
		{
			name:       "source text over limit",
			body:       `{"source_text": "` + strings.Repeat("a", humanize.MaxSourceTextLength+1) + `"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Text too long",
		},
		{
			name:       "flagged content",
			body:       `{"source_text": "This is a scam"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "potentially harmful material",
		},
		{
			name:       "opt-out without reason",
			body:       `{"source_text": "Hello world", "opt_out_disclosure": true, "opt_out_reason": "short"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "detailed justification",
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newHumanizeHandler(&stubGenerator{output: modelOutput})
			req := httptest.NewRequest(http.MethodPost, "/api/humanize", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Humanize(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantError)
		})
	}
}

func TestHumanizeHandler_FallbackOnProviderError(t *testing.T) {
	handler := newHumanizeHandler(&stubGenerator{err: errors.New("provider unavailable")})

	body := `{"source_text": "We must finalize the contract today."}`
	req := httptest.NewRequest(http.MethodPost, "/api/humanize", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Humanize(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "output_variants")
}

type stubBilling struct {
	session      *stripe.CheckoutSession
	sessionErr   error
	event        *stripe.Event
	signatureErr error
}

func (b *stubBilling) CreateCheckoutSession(_ context.Context, _, _, _ string) (*stripe.CheckoutSession, error) {
	return b.session, b.sessionErr
}

func (b *stubBilling) VerifyWebhookSignature(_ []byte, _ string) (*stripe.Event, error) {
	return b.event, b.signatureErr
}

type stubReconciler struct {
	called bool
	err    error
}

func (r *stubReconciler) Reconcile(_ context.Context, _ *stripe.Event) error {
	r.called = true
	return r.err
}

func TestBillingHandler_WebhookInvalidSignature(t *testing.T) {
	billing := &stubBilling{signatureErr: errors.New("signature mismatch")}
	reconciler := &stubReconciler{}
	handler := api.NewBillingHandler(billing, reconciler, "https://example.com/ok", "https://example.com/cancel")

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=bogus")
	rec := httptest.NewRecorder()

	handler.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reconciler.called, "reconciler must not run on a bad signature")
}

func TestBillingHandler_WebhookReceived(t *testing.T) {
	billing := &stubBilling{event: &stripe.Event{Type: "checkout.session.completed"}}
	reconciler := &stubReconciler{}
	handler := api.NewBillingHandler(billing, reconciler, "https://example.com/ok", "https://example.com/cancel")

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=valid")
	rec := httptest.NewRecorder()

	handler.HandleWebhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reconciler.called)
	assert.Contains(t, rec.Body.String(), "received")
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := api.RateLimitMiddleware(3, time.Minute)(next)

	var lastCode int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/humanize", nil)
		req.RemoteAddr = "203.0.113.7:4242"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)

	// A different client is unaffected.
	req := httptest.NewRequest(http.MethodGet, "/api/humanize", nil)
	req.RemoteAddr = "198.51.100.9:4242"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
