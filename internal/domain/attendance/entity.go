package attendance

import (
	"time"
)

// AttendanceRecord is one row of the attendance ledger: at most one per
// (user, IST calendar day). A record with PunchOut == nil is open; exactly
// zero or one open record exists per user at any time.
type AttendanceRecord struct {
	ID         string
	UserID     string
	Date       time.Time
	PunchIn    *time.Time
	PunchOut   *time.Time
	LocationID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	Username     *string
	EmployeeCode *string
	LocationName *string
}

// IsOpen reports whether the record is punched in but not yet out.
func (r AttendanceRecord) IsOpen() bool {
	return r.PunchIn != nil && r.PunchOut == nil
}

// IsCompleted reports whether both punches are recorded.
func (r AttendanceRecord) IsCompleted() bool {
	return r.PunchIn != nil && r.PunchOut != nil
}
