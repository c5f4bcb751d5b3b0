package models

import (
	"time"

	"github.com/uptrace/bun"
)

type AccountDB struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID                 string    `bun:"id,pk" json:"id"`
	Email              string    `bun:"email,notnull,unique" json:"email"`
	Name               string    `bun:"name,notnull" json:"name"`
	PasswordHash       *string   `bun:"password_hash" json:"-"`
	Picture            string    `bun:"picture" json:"picture"`
	Provider           Provider  `bun:"provider,notnull,default:'email'" json:"provider"`
	Role               Role      `bun:"role,notnull,default:'user'" json:"role"`
	Plan               Plan      `bun:"plan,notnull,default:'free'" json:"plan"`
	StripeCustomerID   *string   `bun:"stripe_customer_id" json:"stripe_customer_id"`
	SubscriptionID     *string   `bun:"subscription_id" json:"subscription_id"`
	SubscriptionStatus *string   `bun:"subscription_status" json:"subscription_status"`
	UsageCount         int       `bun:"usage_count,notnull,default:0" json:"usage_count"`
	MaxUsage           int       `bun:"max_usage,notnull,default:5" json:"max_usage"`
	LastResetDate      time.Time `bun:"last_reset_date,notnull,default:current_timestamp" json:"last_reset_date"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt          time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (a *AccountDB) ToAccount() *Account {
	return &Account{
		ID:                 a.ID,
		Email:              a.Email,
		Name:               a.Name,
		PasswordHash:       a.PasswordHash,
		Picture:            a.Picture,
		Provider:           a.Provider,
		Role:               a.Role,
		Plan:               a.Plan,
		StripeCustomerID:   a.StripeCustomerID,
		SubscriptionID:     a.SubscriptionID,
		SubscriptionStatus: a.SubscriptionStatus,
		UsageCount:         a.UsageCount,
		MaxUsage:           a.MaxUsage,
		LastResetDate:      a.LastResetDate,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func AccountFromDomain(a *Account) *AccountDB {
	return &AccountDB{
		ID:                 a.ID,
		Email:              a.Email,
		Name:               a.Name,
		PasswordHash:       a.PasswordHash,
		Picture:            a.Picture,
		Provider:           a.Provider,
		Role:               a.Role,
		Plan:               a.Plan,
		StripeCustomerID:   a.StripeCustomerID,
		SubscriptionID:     a.SubscriptionID,
		SubscriptionStatus: a.SubscriptionStatus,
		UsageCount:         a.UsageCount,
		MaxUsage:           a.MaxUsage,
		LastResetDate:      a.LastResetDate,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

type ReportDB struct {
	bun.BaseModel `bun:"table:reports,alias:r"`

	ID          string       `bun:"id,pk" json:"id"`
	Type        ReportType   `bun:"type,notnull" json:"type"`
	Title       string       `bun:"title,notnull" json:"title"`
	Description string       `bun:"description,notnull" json:"description"`
	Email       string       `bun:"email" json:"email"`
	Status      ReportStatus `bun:"status,notnull,default:'open'" json:"status"`
	ResolvedAt  *time.Time   `bun:"resolved_at" json:"resolved_at"`
	ResolvedBy  *string      `bun:"resolved_by" json:"resolved_by"`
	CreatedAt   time.Time    `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time    `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (r *ReportDB) ToReport() *Report {
	return &Report{
		ID:          r.ID,
		Type:        r.Type,
		Title:       r.Title,
		Description: r.Description,
		Email:       r.Email,
		Status:      r.Status,
		ResolvedAt:  r.ResolvedAt,
		ResolvedBy:  r.ResolvedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ReportFromDomain(r *Report) *ReportDB {
	return &ReportDB{
		ID:          r.ID,
		Type:        r.Type,
		Title:       r.Title,
		Description: r.Description,
		Email:       r.Email,
		Status:      r.Status,
		ResolvedAt:  r.ResolvedAt,
		ResolvedBy:  r.ResolvedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
