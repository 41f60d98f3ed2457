package repositories

import (
	"context"
	"fmt"
	"strings"

	"cryptodash/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OperationLogRepository interface {
	Create(ctx context.Context, log *models.OperationLog) error
	List(ctx context.Context, operator, action string, page, pageSize int) ([]models.OperationLog, int64, error)
}

type operationLogRepo struct {
	db *pgxpool.Pool
}

func NewOperationLogRepository(db *pgxpool.Pool) OperationLogRepository {
	return &operationLogRepo{db: db}
}

func (r *operationLogRepo) Create(ctx context.Context, log *models.OperationLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO operation_logs (id, operator, action, target, ip)
		 VALUES ($1, $2, $3, $4, $5)`,
		log.ID, log.Operator, log.Action, log.Target, log.IP)
	return err
}

func (r *operationLogRepo) List(ctx context.Context, operator, action string, page, pageSize int) ([]models.OperationLog, int64, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}

	if operator != "" {
		args = append(args, "%"+strings.ToLower(operator)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(operator) LIKE $%d", len(args)))
	}
	if action != "" {
		args = append(args, "%"+strings.ToLower(action)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(action) LIKE $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM operation_logs WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(
		`SELECT id, operator, action, target, ip, created_at
		 FROM operation_logs WHERE %s
		 ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []models.OperationLog
	for rows.Next() {
		var l models.OperationLog
		if err := rows.Scan(&l.ID, &l.Operator, &l.Action, &l.Target, &l.IP, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
