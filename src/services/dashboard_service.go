package services

import (
	"context"
	"sort"

	"cryptodash/src/models"
	"cryptodash/src/repositories"
	"cryptodash/src/schemas"

	"github.com/shopspring/decimal"
)

type DashboardServiceI interface {
	Stats(ctx context.Context, userID int64) (*schemas.DashboardStats, error)
}

type DashboardService struct {
	assets   repositories.AssetRepository
	messages repositories.MessageRepository
	reports  repositories.ReportRepository
}

func NewDashboardService(assets repositories.AssetRepository, messages repositories.MessageRepository, reports repositories.ReportRepository) *DashboardService {
	return &DashboardService{assets: assets, messages: messages, reports: reports}
}

// Stats aggregates the dashboard summary: total portfolio value, unread
// message count, pending report count, and a short merged activity feed.
func (s *DashboardService) Stats(ctx context.Context, userID int64) (*schemas.DashboardStats, error) {
	assets, err := s.assets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.CurrentValue)
	}

	unread, err := s.messages.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := s.reports.CountByStatus(ctx, models.ReportPending)
	if err != nil {
		return nil, err
	}

	activity, err := s.recentActivity(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &schemas.DashboardStats{
		TotalAssets:    len(assets),
		TotalValue:     total,
		UnreadMessages: unread,
		PendingReports: pending,
		RecentActivity: activity,
	}, nil
}

func (s *DashboardService) recentActivity(ctx context.Context, userID int64) ([]schemas.Activity, error) {
	const timeLayout = "2006-01-02 15:04:05"

	messages, err := s.messages.GetByUserID(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.GetByStatus(ctx, models.ReportPending, 5)
	if err != nil {
		return nil, err
	}

	activity := make([]schemas.Activity, 0, len(messages)+len(reports))
	for _, m := range messages {
		status := "read"
		if !m.Read {
			status = "unread"
		}
		activity = append(activity, schemas.Activity{
			ID:      m.ID,
			Type:    "message",
			Title:   m.Title,
			Content: m.Content,
			Status:  status,
			Time:    m.CreatedAt.Format(timeLayout),
		})
	}
	for _, r := range reports {
		activity = append(activity, schemas.Activity{
			ID:      r.ID,
			Type:    "report",
			Title:   r.Title,
			Content: r.Content,
			Status:  r.Status,
			Time:    r.GeneratedAt.Format(timeLayout),
		})
	}

	sort.Slice(activity, func(i, j int) bool { return activity[i].Time > activity[j].Time })
	if len(activity) > 5 {
		activity = activity[:5]
	}
	return activity, nil
}
