package models

import "time"

type Plan string

const (
	PlanFree       Plan = "free"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

type Provider string

const (
	ProviderEmail  Provider = "email"
	ProviderGoogle Provider = "google"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultMaxUsage is the free-tier monthly allowance of humanizations.
const DefaultMaxUsage = 5

// Account is the canonical user record. Every component depends on this one
// definition; there are no per-handler copies of the schema.
type Account struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PasswordHash       *string   `json:"-"`
	Picture            string    `json:"picture,omitempty"`
	Provider           Provider  `json:"provider"`
	Role               Role      `json:"role"`
	Plan               Plan      `json:"plan"`
	StripeCustomerID   *string   `json:"stripe_customer_id,omitempty"`
	SubscriptionID     *string   `json:"subscription_id,omitempty"`
	SubscriptionStatus *string   `json:"subscription_status,omitempty"`
	UsageCount         int       `json:"usage_count"`
	MaxUsage           int       `json:"max_usage"`
	LastResetDate      time.Time `json:"last_reset_date"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
