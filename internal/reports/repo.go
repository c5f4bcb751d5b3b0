package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/humyn-ai/humyn/go/internal/models"
	"github.com/uptrace/bun"
)

type Repository interface {
	InitializeDatabase(ctx context.Context) error
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context) ([]*models.Report, error)
	Delete(ctx context.Context, reportID string) error
}

type ReportRepository struct {
	db *bun.DB
}

func NewReportRepository(db *bun.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) InitializeDatabase(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*models.ReportDB)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.Status == "" {
		report.Status = models.ReportStatusOpen
	}
	reportDB := models.ReportFromDomain(report)
	reportDB.CreatedAt = time.Now()
	reportDB.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(reportDB).Exec(ctx)
	return err
}

func (r *ReportRepository) List(ctx context.Context) ([]*models.Report, error) {
	var reportsDB []*models.ReportDB
	err := r.db.NewSelect().
		Model(&reportsDB).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.Report, 0, len(reportsDB))
	for _, rep := range reportsDB {
		result = append(result, rep.ToReport())
	}
	return result, nil
}

func (r *ReportRepository) Delete(ctx context.Context, reportID string) error {
	_, err := r.db.NewDelete().
		Model((*models.ReportDB)(nil)).
		Where("id = ?", reportID).
		Exec(ctx)
	return err
}
