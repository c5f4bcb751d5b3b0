// Package entitlement decides whether an account may invoke the metered
// humanize service and records usage after the fact.
package entitlement

import (
	"context"
	"fmt"

	"github.com/humyn-ai/humyn/go/internal/models"
)

// CanProceed reports whether the account is entitled to another humanization.
// Paid plans are never metered. A nil account is an anonymous caller: the
// server keeps no entitlement state for those, so the check passes and any
// limit is the client's concern.
func CanProceed(account *models.Account) bool {
	if account == nil {
		return true
	}
	if account.Plan == models.PlanPremium || account.Plan == models.PlanEnterprise {
		return true
	}
	return account.UsageCount < account.MaxUsage
}

type UsageStore interface {
	IncrementUsage(ctx context.Context, accountID string) error
}

// Ledger persists usage for metered accounts.
type Ledger struct {
	store UsageStore
}

func NewLedger(store UsageStore) *Ledger {
	return &Ledger{store: store}
}

// RecordUse increments the usage counter after a successful transform.
// No-op for anonymous callers and non-free plans. The increment happens in
// the storage layer so concurrent requests cannot race the counter.
func (l *Ledger) RecordUse(ctx context.Context, account *models.Account) error {
	if account == nil || account.Plan != models.PlanFree {
		return nil
	}
	if err := l.store.IncrementUsage(ctx, account.ID); err != nil {
		return fmt.Errorf("failed to record usage for account %s: %w", account.ID, err)
	}
	account.UsageCount++
	return nil
}
