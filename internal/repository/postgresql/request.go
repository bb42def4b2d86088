package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/punchdesk/attendance-backend-go/internal/domain/request"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepository{db: db}
}

// Create implements request.RequestRepository.
func (r *requestRepository) Create(ctx context.Context, req request.CorrectionRequest) (request.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_requests (user_id, date, punch_in, punch_out, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID,
		req.Date,
		req.PunchIn,
		req.PunchOut,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return request.CorrectionRequest{}, fmt.Errorf("failed to create attendance request: %w", err)
	}

	return req, nil
}

// GetByID implements request.RequestRepository.
func (r *requestRepository) GetByID(ctx context.Context, id string) (request.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, punch_in, punch_out, reason, status, created_at, updated_at
		FROM attendance_requests
		WHERE id = $1
	`

	var req request.CorrectionRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.Date, &req.PunchIn, &req.PunchOut,
		&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.CorrectionRequest{}, request.ErrRequestNotFound
		}
		return request.CorrectionRequest{}, fmt.Errorf("failed to get attendance request: %w", err)
	}

	return req, nil
}

// ExistsForUserAndWindow implements request.RequestRepository.
func (r *requestRepository) ExistsForUserAndWindow(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendance_requests
			WHERE user_id = $1
			  AND date >= $2
			  AND date <= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for existing request: %w", err)
	}

	return exists, nil
}

// UpdateStatus implements request.RequestRepository.
func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status request.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return request.ErrRequestNotFound
	}

	return nil
}

// List implements request.RequestRepository.
func (r *requestRepository) List(ctx context.Context, filter request.RequestFilter) ([]request.CorrectionRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		where += fmt.Sprintf(" AND ar.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND ar.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND ar.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND ar.date <= ($%d::date + interval '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_requests ar WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT ar.id, ar.user_id, ar.date, ar.punch_in, ar.punch_out,
		       ar.reason, ar.status, ar.created_at, ar.updated_at,
		       u.username, u.employee_code
		FROM attendance_requests ar
		LEFT JOIN users u ON u.id = ar.user_id
		WHERE %s
		ORDER BY ar.date DESC, ar.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance requests: %w", err)
	}
	defer rows.Close()

	var requests []request.CorrectionRequest
	for rows.Next() {
		var req request.CorrectionRequest
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.Date, &req.PunchIn, &req.PunchOut,
			&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
			&req.Username, &req.EmployeeCode,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}
