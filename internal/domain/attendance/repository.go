package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for the attendance ledger.
type AttendanceRepository interface {
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByUserAndWindow retrieves the record whose date falls inside
	// [start, end] for the user. Returns (nil, nil) when none exists.
	GetByUserAndWindow(ctx context.Context, userID string, start, end time.Time) (*AttendanceRecord, error)

	// Update overwrites punch times (and nothing else) of an existing record.
	Update(ctx context.Context, record AttendanceRecord) error

	// Sheet retrieves ledger rows with filters and pagination, newest first,
	// together with the total count as one read pair.
	Sheet(ctx context.Context, filter SheetFilter) ([]AttendanceRecord, int64, error)

	// ListForExport retrieves all matching rows, oldest first, for the
	// spreadsheet export.
	ListForExport(ctx context.Context, filter SheetFilter) ([]AttendanceRecord, error)

	// ListOpenBefore returns open records whose date is before the cutoff.
	// Used by the stale-session cron job.
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]AttendanceRecord, error)
}
