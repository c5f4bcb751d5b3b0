package models

import "time"

type ReportType string

const (
	ReportTypeFeature     ReportType = "feature"
	ReportTypeBug         ReportType = "bug"
	ReportTypeImprovement ReportType = "improvement"
)

type ReportStatus string

const (
	ReportStatusOpen     ReportStatus = "open"
	ReportStatusResolved ReportStatus = "resolved"
)

// Report is a user-submitted feature request or bug report.
type Report struct {
	ID          string       `json:"id"`
	Type        ReportType   `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Email       string       `json:"email"`
	Status      ReportStatus `json:"status"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
	ResolvedBy  *string      `json:"resolved_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
