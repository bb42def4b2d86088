package request

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Decision is a reviewer's verdict on a pending request.
type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionReject Decision = "REJECT"
)

// CorrectionRequest is a user's ask to backfill or fix a day's punches,
// subject to ADMIN/HR approval. At most one may exist per (user, IST day).
type CorrectionRequest struct {
	ID        string
	UserID    string
	Date      time.Time
	PunchIn   time.Time
	PunchOut  time.Time
	Reason    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	Username     *string
	EmployeeCode *string
}
