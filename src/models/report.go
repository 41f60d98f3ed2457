package models

import "time"

type Report struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	Title       string     `db:"title"`
	Content     string     `db:"content"`
	Status      string     `db:"status"`
	GeneratedAt time.Time  `db:"generated_at"`
	ReviewedAt  *time.Time `db:"reviewed_at"`
	ReviewedBy  *int64     `db:"reviewed_by"`
}

const (
	ReportPending  = "pending"
	ReportApproved = "approved"
	ReportRejected = "rejected"
)
