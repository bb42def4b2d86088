package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (user_id, date, punch_in, punch_out, location_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.UserID,
		record.Date,
		record.PunchIn,
		record.PunchOut,
		record.LocationID,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByUserAndWindow implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndWindow(ctx context.Context, userID string, start, end time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, date, punch_in, punch_out, location_id, created_at, updated_at
		FROM attendances
		WHERE user_id = $1
		  AND date >= $2
		  AND date <= $3
		LIMIT 1
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, userID, start, end).Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.PunchIn, &rec.PunchOut,
		&rec.LocationID, &rec.CreatedAt, &rec.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record in this day window
		}
		return nil, fmt.Errorf("failed to get attendance by user and window: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.AttendanceRepository. Only punch times are
// mutable; date and location are fixed at creation.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET punch_in = $2, punch_out = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, record.ID, record.PunchIn, record.PunchOut)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

func buildSheetWhere(filter attendance.SheetFilter) (string, []interface{}) {
	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		where += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND a.date <= ($%d::date + interval '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	return where, args
}

// Sheet implements attendance.AttendanceRepository.
func (a *attendanceRepository) Sheet(ctx context.Context, filter attendance.SheetFilter) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, a.db)

	where, args := buildSheetWhere(filter)

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.date, a.punch_in, a.punch_out, a.location_id,
		       a.created_at, a.updated_at,
		       u.username, u.employee_code
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date DESC, a.user_id ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance sheet: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.PunchIn, &rec.PunchOut,
			&rec.LocationID, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.Username, &rec.EmployeeCode,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

// ListForExport implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListForExport(ctx context.Context, filter attendance.SheetFilter) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	where, args := buildSheetWhere(filter)

	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.date, a.punch_in, a.punch_out, a.location_id,
		       a.created_at, a.updated_at,
		       u.username, u.employee_code
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date ASC, a.user_id ASC
	`, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance export: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.PunchIn, &rec.PunchOut,
			&rec.LocationID, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.Username, &rec.EmployeeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, date, punch_in, punch_out, location_id, created_at, updated_at
		FROM attendances
		WHERE punch_out IS NULL
		  AND date < $1
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query open attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.PunchIn, &rec.PunchOut,
			&rec.LocationID, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
