package services

import (
	"context"

	"cryptodash/src/models"
	"cryptodash/src/repositories"
	"cryptodash/src/utils"
)

type ReportServiceI interface {
	List(ctx context.Context, status string, limit int) ([]models.Report, error)
	Approve(ctx context.Context, id, reviewerID int64) error
	Reject(ctx context.Context, id, reviewerID int64) error
	Submit(ctx context.Context, report *models.Report) error
}

// ReportService handles review of externally generated advisory reports.
// Generation itself happens upstream; reports arrive pending and are
// approved or rejected by an admin.
type ReportService struct {
	reports repositories.ReportRepository
	logs    repositories.OperationLogRepository
}

func NewReportService(reports repositories.ReportRepository, logs repositories.OperationLogRepository) *ReportService {
	return &ReportService{reports: reports, logs: logs}
}

func (s *ReportService) List(ctx context.Context, status string, limit int) ([]models.Report, error) {
	switch status {
	case "", models.ReportPending, models.ReportApproved, models.ReportRejected:
	default:
		return nil, utils.BadRequest("unknown report status: " + status)
	}
	return s.reports.GetByStatus(ctx, status, limit)
}

func (s *ReportService) Approve(ctx context.Context, id, reviewerID int64) error {
	return s.reports.UpdateStatus(ctx, id, models.ReportApproved, reviewerID)
}

func (s *ReportService) Reject(ctx context.Context, id, reviewerID int64) error {
	return s.reports.UpdateStatus(ctx, id, models.ReportRejected, reviewerID)
}

func (s *ReportService) Submit(ctx context.Context, report *models.Report) error {
	report.Status = models.ReportPending
	return s.reports.Create(ctx, report)
}
