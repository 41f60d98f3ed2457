package repositories

import (
	"context"

	"cryptodash/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository interface {
	GetByStatus(ctx context.Context, status string, limit int) ([]models.Report, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string, reviewerID int64) error
	Create(ctx context.Context, report *models.Report) error
}

type reportRepo struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) GetByStatus(ctx context.Context, status string, limit int) ([]models.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, user_id, title, content, status, generated_at, reviewed_at, reviewed_by
		FROM reports`
	args := []interface{}{limit}
	if status != "" {
		query += ` WHERE status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY generated_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var rep models.Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.Title, &rep.Content, &rep.Status,
			&rep.GeneratedAt, &rep.ReviewedAt, &rep.ReviewedBy); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *reportRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reports WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *reportRepo) UpdateStatus(ctx context.Context, id int64, status string, reviewerID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE reports SET status = $2, reviewed_at = NOW(), reviewed_by = $3
		 WHERE id = $1`,
		id, status, reviewerID)
	return err
}

func (r *reportRepo) Create(ctx context.Context, report *models.Report) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO reports (user_id, title, content, status, generated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING id, generated_at`,
		report.UserID, report.Title, report.Content, report.Status,
	).Scan(&report.ID, &report.GeneratedAt)
}
