package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/humyn-ai/humyn/go/internal/models"
	"github.com/uptrace/bun"
)

var ErrNotFound = errors.New("account not found")

type Repository interface {
	InitializeDatabase(ctx context.Context) error
	GetByID(ctx context.Context, accountID string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	IncrementUsage(ctx context.Context, accountID string) error
	UpgradeToPremium(ctx context.Context, email, stripeCustomerID, subscriptionID string) error
	DowngradeByEmail(ctx context.Context, email, subscriptionStatus string) error
	DowngradeBySubscriptionID(ctx context.Context, subscriptionID, subscriptionStatus string) error
}

type AccountRepository struct {
	db *bun.DB
}

func NewAccountRepository(db *bun.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) InitializeDatabase(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*models.AccountDB)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.NewCreateIndex().
		Model((*models.AccountDB)(nil)).
		Index("idx_accounts_email").
		Column("email").
		Unique().
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.NewCreateIndex().
		Model((*models.AccountDB)(nil)).
		Index("idx_accounts_subscription_id").
		Column("subscription_id").
		IfNotExists().
		Exec(ctx)
	return err
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID string) (*models.Account, error) {
	accountDB := new(models.AccountDB)
	err := r.db.NewSelect().
		Model(accountDB).
		Where("id = ?", accountID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return accountDB.ToAccount(), nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	accountDB := new(models.AccountDB)
	err := r.db.NewSelect().
		Model(accountDB).
		Where("email = ?", normalizeEmail(email)).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return accountDB.ToAccount(), nil
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.Email = normalizeEmail(account.Email)
	accountDB := models.AccountFromDomain(account)
	accountDB.CreatedAt = time.Now()
	accountDB.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(accountDB).Exec(ctx)
	return err
}

func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	accountDB := models.AccountFromDomain(account)
	accountDB.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(accountDB).
		WherePK().
		Exec(ctx)
	return err
}

// IncrementUsage bumps the usage counter in a single UPDATE so concurrent
// requests from the same account cannot lose increments. Only free accounts
// are metered.
func (r *AccountRepository) IncrementUsage(ctx context.Context, accountID string) error {
	_, err := r.db.NewUpdate().
		Model((*models.AccountDB)(nil)).
		Set("usage_count = usage_count + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", accountID).
		Where("plan = ?", models.PlanFree).
		Exec(ctx)
	return err
}

func (r *AccountRepository) UpgradeToPremium(ctx context.Context, email, stripeCustomerID, subscriptionID string) error {
	res, err := r.db.NewUpdate().
		Model((*models.AccountDB)(nil)).
		Set("plan = ?", models.PlanPremium).
		Set("stripe_customer_id = ?", stripeCustomerID).
		Set("subscription_id = ?", subscriptionID).
		Set("subscription_status = ?", "active").
		Set("usage_count = 0").
		Set("updated_at = ?", time.Now()).
		Where("email = ?", normalizeEmail(email)).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *AccountRepository) DowngradeByEmail(ctx context.Context, email, subscriptionStatus string) error {
	res, err := r.downgradeQuery(subscriptionStatus).
		Where("email = ?", normalizeEmail(email)).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *AccountRepository) DowngradeBySubscriptionID(ctx context.Context, subscriptionID, subscriptionStatus string) error {
	res, err := r.downgradeQuery(subscriptionStatus).
		Where("subscription_id = ?", subscriptionID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *AccountRepository) downgradeQuery(subscriptionStatus string) *bun.UpdateQuery {
	return r.db.NewUpdate().
		Model((*models.AccountDB)(nil)).
		Set("plan = ?", models.PlanFree).
		Set("subscription_status = ?", subscriptionStatus).
		Set("usage_count = 0").
		Set("max_usage = ?", models.DefaultMaxUsage).
		Set("updated_at = ?", time.Now())
}

func requireRows(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
