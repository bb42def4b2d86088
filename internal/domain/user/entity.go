package user

import "time"

type Role string

const (
	RoleStaff Role = "STAFF"
	RoleHR    Role = "HR"
	RoleAdmin Role = "ADMIN"
)

// IsReviewer reports whether the role may review correction requests.
func (r Role) IsReviewer() bool {
	return r == RoleAdmin || r == RoleHR
}

func IsValidRole(s string) bool {
	switch Role(s) {
	case RoleStaff, RoleHR, RoleAdmin:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type User struct {
	ID            string
	Username      string
	Password      string // bcrypt hash
	EmployeeCode  string
	Role          Role
	Status        Status
	LocationID    *string
	DateOfJoining time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	LocationName *string
}
