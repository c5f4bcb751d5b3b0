package entitlement

import (
	"context"
	"errors"
	"testing"

	"github.com/humyn-ai/humyn/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanProceed(t *testing.T) {
	tests := []struct {
		name    string
		account *models.Account
		want    bool
	}{
		{
			name:    "anonymous caller is allowed",
			account: nil,
			want:    true,
		},
		{
			name:    "free account under quota",
			account: &models.Account{Plan: models.PlanFree, UsageCount: 4, MaxUsage: 5},
			want:    true,
		},
		{
			name:    "free account at quota",
			account: &models.Account{Plan: models.PlanFree, UsageCount: 5, MaxUsage: 5},
			want:    false,
		},
		{
			name:    "free account over quota",
			account: &models.Account{Plan: models.PlanFree, UsageCount: 12, MaxUsage: 5},
			want:    false,
		},
		{
			name:    "premium account ignores counter",
			account: &models.Account{Plan: models.PlanPremium, UsageCount: 9999, MaxUsage: 5},
			want:    true,
		},
		{
			name:    "enterprise account ignores counter",
			account: &models.Account{Plan: models.PlanEnterprise, UsageCount: 9999, MaxUsage: 5},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanProceed(tt.account))
		})
	}
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

func TestLedgerRecordUse(t *testing.T) {
	ctx := context.Background()

	t.Run("free account increments by exactly one", func(t *testing.T) {
		store := newFakeUsageStore()
		ledger := NewLedger(store)
		account := &models.Account{ID: "acc-1", Plan: models.PlanFree, UsageCount: 2, MaxUsage: 5}

		require.NoError(t, ledger.RecordUse(ctx, account))

		assert.Equal(t, 1, store.increments["acc-1"])
		assert.Equal(t, 3, account.UsageCount)
	})

	t.Run("premium account is a no-op", func(t *testing.T) {
		store := newFakeUsageStore()
		ledger := NewLedger(store)
		account := &models.Account{ID: "acc-2", Plan: models.PlanPremium, UsageCount: 7}

		require.NoError(t, ledger.RecordUse(ctx, account))

		assert.Empty(t, store.increments)
		assert.Equal(t, 7, account.UsageCount)
	})

	t.Run("enterprise account is a no-op", func(t *testing.T) {
		store := newFakeUsageStore()
		ledger := NewLedger(store)
		account := &models.Account{ID: "acc-3", Plan: models.PlanEnterprise}

		require.NoError(t, ledger.RecordUse(ctx, account))
		assert.Empty(t, store.increments)
	})

	t.Run("anonymous caller is a no-op", func(t *testing.T) {
		store := newFakeUsageStore()
		ledger := NewLedger(store)

		require.NoError(t, ledger.RecordUse(ctx, nil))
		assert.Empty(t, store.increments)
	})

	t.Run("store failure is surfaced", func(t *testing.T) {
		store := newFakeUsageStore()
		store.err = errors.New("connection reset")
		ledger := NewLedger(store)
		account := &models.Account{ID: "acc-4", Plan: models.PlanFree, UsageCount: 1, MaxUsage: 5}

		err := ledger.RecordUse(ctx, account)

		require.Error(t, err)
		assert.Equal(t, 1, account.UsageCount)
	})
}
