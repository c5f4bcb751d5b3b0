package humanize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/humyn-ai/humyn/go/internal/entitlement"
	"github.com/humyn-ai/humyn/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	content string
	err     error
	calls   int
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

type fakeUsageStore struct {
	increments map[string]int
	err        error
}

func newFakeUsageStore() *fakeUsageStore {
	return &fakeUsageStore{increments: make(map[string]int)}
}

func (f *fakeUsageStore) IncrementUsage(_ context.Context, accountID string) error {
	if f.err != nil {
		return f.err
	}
	f.increments[accountID]++
	return nil
}

const validModelOutput = `{
  "output_variants": [
    {"variant_id": "v1", "tone": "Conversational", "text": "Hey, this reads a lot more naturally now."}
  ],
  "changelog": ["- Added contractions."],
  "style_profile": {
    "tone": "Conversational",
    "formality": "Medium",
    "audience": "general",
    "personalization_tokens_used": [],
    "imperfection_level": "low"
  },
  "disclosure": "This text was assisted by an AI writing tool.",
  "confidence_score": 0.86
}`

func newTestService(gen *fakeGenerator, store *fakeUsageStore) *Service {
	return NewService(gen, entitlement.NewLedger(store))
}

func TestHumanizeValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *models.HumanizeRequest
		wantErr error
	}{
		{
			name:    "empty text",
			req:     &models.HumanizeRequest{SourceText: "   "},
			wantErr: ErrEmptySourceText,
		},
		{
			name:    "text over the length cap",
			req:     &models.HumanizeRequest{SourceText: strings.Repeat("a", MaxSourceTextLength+1)},
			wantErr: ErrSourceTextTooLong,
		},
		{
			name:    "flagged content",
			req:     &models.HumanizeRequest{SourceText: "This is a scam"},
			wantErr: ErrContentFlagged,
		},
		{
			name: "opt-out without justification",
			req: &models.HumanizeRequest{
				SourceText:       "Please make this friendlier.",
				OptOutDisclosure: true,
				OptOutReason:     "short",
			},
			wantErr: ErrOptOutReasonRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{content: validModelOutput}
			svc := newTestService(gen, newFakeUsageStore())

			_, err := svc.Humanize(ctx, nil, tt.req)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, gen.calls, "provider must not be called on rejected input")
		})
	}
}

func TestHumanizeEntitlementDenied(t *testing.T) {
	gen := &fakeGenerator{content: validModelOutput}
	svc := newTestService(gen, newFakeUsageStore())
	account := &models.Account{ID: "acc-1", Plan: models.PlanFree, UsageCount: 5, MaxUsage: 5}

	_, err := svc.Humanize(context.Background(), account, &models.HumanizeRequest{SourceText: "Rewrite this please."})

	require.ErrorIs(t, err, ErrUsageLimitExceeded)
	assert.Zero(t, gen.calls)
}

func TestHumanizeAnonymousSucceeds(t *testing.T) {
	gen := &fakeGenerator{content: validModelOutput}
	store := newFakeUsageStore()
	svc := newTestService(gen, store)

	result, err := svc.Humanize(context.Background(), nil, &models.HumanizeRequest{SourceText: "Rewrite this please."})

	require.NoError(t, err)
	require.NotEmpty(t, result.OutputVariants)
	assert.NotEmpty(t, result.OutputVariants[0].Text)
	assert.Empty(t, store.increments, "anonymous requests are not metered")
}

func TestHumanizeRecordsUsageForFreeAccounts(t *testing.T) {
	gen := &fakeGenerator{content: validModelOutput}
	store := newFakeUsageStore()
	svc := newTestService(gen, store)
	account := &models.Account{ID: "acc-1", Plan: models.PlanFree, UsageCount: 0, MaxUsage: 5}

	_, err := svc.Humanize(context.Background(), account, &models.HumanizeRequest{SourceText: "Rewrite this please."})

	require.NoError(t, err)
	assert.Equal(t, 1, store.increments["acc-1"])
	assert.Equal(t, 1, account.UsageCount)
}

func TestHumanizeLedgerFailureStillReturnsResult(t *testing.T) {
	gen := &fakeGenerator{content: validModelOutput}
	store := newFakeUsageStore()
	store.err = errors.New("db down")
	svc := newTestService(gen, store)
	account := &models.Account{ID: "acc-1", Plan: models.PlanFree, UsageCount: 0, MaxUsage: 5}

	result, err := svc.Humanize(context.Background(), account, &models.HumanizeRequest{SourceText: "Rewrite this please."})

	require.NoError(t, err)
	assert.NotEmpty(t, result.OutputVariants)
}

func TestHumanizeFallsBackOnProviderError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("provider timeout")}
	svc := newTestService(gen, newFakeUsageStore())

	result, err := svc.Humanize(context.Background(), nil, &models.HumanizeRequest{SourceText: "We must ship this. Hi team."})

	require.NoError(t, err)
	require.NotEmpty(t, result.OutputVariants)
	for _, v := range result.OutputVariants {
		assert.NotEmpty(t, v.Text)
	}
	assert.Equal(t, 0.75, result.ConfidenceScore)
}

func TestHumanizeFallsBackOnMalformedOutput(t *testing.T) {
	gen := &fakeGenerator{content: "Sorry, I can't produce JSON today."}
	svc := newTestService(gen, newFakeUsageStore())

	result, err := svc.Humanize(context.Background(), nil, &models.HumanizeRequest{SourceText: "Rewrite this please."})

	require.NoError(t, err)
	assert.NotEmpty(t, result.OutputVariants)
}

func TestHumanizeParsesFencedJSON(t *testing.T) {
	gen := &fakeGenerator{content: "```json\n" + validModelOutput + "\n```"}
	svc := newTestService(gen, newFakeUsageStore())

	result, err := svc.Humanize(context.Background(), nil, &models.HumanizeRequest{SourceText: "Rewrite this please."})

	require.NoError(t, err)
	assert.Equal(t, 0.86, result.ConfidenceScore)
}

func TestHumanizeOptOutBlanksDisclosure(t *testing.T) {
	gen := &fakeGenerator{content: validModelOutput}
	svc := newTestService(gen, newFakeUsageStore())

	result, err := svc.Humanize(context.Background(), nil, &models.HumanizeRequest{
		SourceText:       "Rewrite this please.",
		OptOutDisclosure: true,
		OptOutReason:     "internal draft, disclosure added downstream",
	})

	require.NoError(t, err)
	assert.Empty(t, result.Disclosure)
}
