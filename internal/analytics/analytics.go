// Package analytics assembles the admin dashboard summary from account data.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/humyn-ai/humyn/go/internal/models"
)

const premiumMonthlyPrice = 9.99

type Stats interface {
	CountAccounts(ctx context.Context) (int, error)
	CountByPlan(ctx context.Context, plan models.Plan) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	TotalUsage(ctx context.Context) (int, error)
	PeakUsage(ctx context.Context) (int, error)
	RecentAccounts(ctx context.Context, limit int) ([]*models.Account, error)
	TopAccountsByUsage(ctx context.Context, limit int) ([]*models.Account, error)
}

type AccountOverview struct {
	Email      string      `json:"email"`
	Plan       models.Plan `json:"plan"`
	UsageCount int         `json:"usage_count"`
	MaxUsage   int         `json:"max_usage"`
	CreatedAt  time.Time   `json:"created_at"`
}

type AccountUsage struct {
	Email      string `json:"email"`
	UsageCount int    `json:"usage_count"`
}

type Summary struct {
	TotalUsers          int               `json:"totalUsers"`
	FreeUsers           int               `json:"freeUsers"`
	PremiumUsers        int               `json:"premiumUsers"`
	TotalHumanizations  int               `json:"totalHumanizations"`
	HumanizationsToday  int               `json:"humanizationsToday"`
	HumanizationsWeek   int               `json:"humanizationsWeek"`
	MonthlyRevenue      string            `json:"monthlyRevenue"`
	MRR                 string            `json:"mrr"`
	ActiveSubscriptions int               `json:"activeSubscriptions"`
	AvgUsagePerUser     int               `json:"avgUsagePerUser"`
	PeakUsage           int               `json:"peakUsage"`
	RecentUsers         []AccountOverview `json:"recentUsers"`
	TopUsers            []AccountUsage    `json:"topUsers"`
}

type Service struct {
	stats Stats
}

func NewService(stats Stats) *Service {
	return &Service{stats: stats}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	totalUsers, err := s.stats.CountAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}

	freeUsers, err := s.stats.CountByPlan(ctx, models.PlanFree)
	if err != nil {
		return nil, err
	}
	premiumUsers, err := s.stats.CountByPlan(ctx, models.PlanPremium)
	if err != nil {
		return nil, err
	}

	totalUsage, err := s.stats.TotalUsage(ctx)
	if err != nil {
		return nil, err
	}
	peakUsage, err := s.stats.PeakUsage(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := today.AddDate(0, 0, -7)

	// New signups stand in for per-day usage; humanizations themselves are
	// not timestamped.
	usersToday, err := s.stats.CountCreatedSince(ctx, today)
	if err != nil {
		return nil, err
	}
	usersWeek, err := s.stats.CountCreatedSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}

	recent, err := s.stats.RecentAccounts(ctx, 10)
	if err != nil {
		return nil, err
	}
	top, err := s.stats.TopAccountsByUsage(ctx, 10)
	if err != nil {
		return nil, err
	}

	avgUsage := 0
	if totalUsers > 0 {
		avgUsage = totalUsage / totalUsers
	}

	monthlyRevenue := float64(premiumUsers) * premiumMonthlyPrice

	summary := &Summary{
		TotalUsers:          totalUsers,
		FreeUsers:           freeUsers,
		PremiumUsers:        premiumUsers,
		TotalHumanizations:  totalUsage,
		HumanizationsToday:  usersToday,
		HumanizationsWeek:   usersWeek,
		MonthlyRevenue:      fmt.Sprintf("%.2f", monthlyRevenue),
		MRR:                 fmt.Sprintf("%.2f", monthlyRevenue),
		ActiveSubscriptions: premiumUsers,
		AvgUsagePerUser:     avgUsage,
		PeakUsage:           peakUsage,
		RecentUsers:         make([]AccountOverview, 0, len(recent)),
		TopUsers:            make([]AccountUsage, 0, len(top)),
	}

	for _, a := range recent {
		summary.RecentUsers = append(summary.RecentUsers, AccountOverview{
			Email:      a.Email,
			Plan:       a.Plan,
			UsageCount: a.UsageCount,
			MaxUsage:   a.MaxUsage,
			CreatedAt:  a.CreatedAt,
		})
	}
	for _, a := range top {
		summary.TopUsers = append(summary.TopUsers, AccountUsage{
			Email:      a.Email,
			UsageCount: a.UsageCount,
		})
	}

	return summary, nil
}
