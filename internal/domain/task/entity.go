package task

import "time"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          string
	UserID      string
	AssignedBy  *string
	Title       string
	Description string
	DueDate     *time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	Username       *string
	AssignedByName *string
}
