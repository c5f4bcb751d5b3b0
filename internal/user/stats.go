package user

import (
	"context"
	"time"

	"github.com/humyn-ai/humyn/go/internal/models"
)

// Aggregate queries backing the admin analytics view. Kept off the core
// Repository interface; the analytics service declares what it needs.

func (r *AccountRepository) CountAccounts(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*models.AccountDB)(nil)).Count(ctx)
}

func (r *AccountRepository) CountByPlan(ctx context.Context, plan models.Plan) (int, error) {
	return r.db.NewSelect().
		Model((*models.AccountDB)(nil)).
		Where("plan = ?", plan).
		Count(ctx)
}

func (r *AccountRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*models.AccountDB)(nil)).
		Where("created_at >= ?", since).
		Count(ctx)
}

func (r *AccountRepository) TotalUsage(ctx context.Context) (int, error) {
	var total int
	err := r.db.NewSelect().
		Model((*models.AccountDB)(nil)).
		ColumnExpr("COALESCE(SUM(usage_count), 0)").
		Scan(ctx, &total)
	return total, err
}

func (r *AccountRepository) PeakUsage(ctx context.Context) (int, error) {
	var peak int
	err := r.db.NewSelect().
		Model((*models.AccountDB)(nil)).
		ColumnExpr("COALESCE(MAX(usage_count), 0)").
		Scan(ctx, &peak)
	return peak, err
}

func (r *AccountRepository) RecentAccounts(ctx context.Context, limit int) ([]*models.Account, error) {
	var accountsDB []*models.AccountDB
	err := r.db.NewSelect().
		Model(&accountsDB).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return toAccounts(accountsDB), nil
}

func (r *AccountRepository) TopAccountsByUsage(ctx context.Context, limit int) ([]*models.Account, error) {
	var accountsDB []*models.AccountDB
	err := r.db.NewSelect().
		Model(&accountsDB).
		Order("usage_count DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return toAccounts(accountsDB), nil
}

func toAccounts(accountsDB []*models.AccountDB) []*models.Account {
	accounts := make([]*models.Account, 0, len(accountsDB))
	for _, a := range accountsDB {
		accounts = append(accounts, a.ToAccount())
	}
	return accounts
}
