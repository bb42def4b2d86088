package user

import (
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	EmployeeCode  string  `json:"employee_code"`
	Role          string  `json:"role"`
	LocationID    *string `json:"location_id,omitempty"`
	DateOfJoining *string `json:"date_of_joining,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, digits, '.', '_' or '-'",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if !IsValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of STAFF, HR, ADMIN",
		})
	}

	if r.LocationID != nil && !validator.IsValidUUID(*r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id must be a valid UUID",
		})
	}

	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_joining",
				Message: "date_of_joining must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateUserRequest struct {
	ID         string  `json:"-"`
	Role       *string `json:"role,omitempty"`
	Status     *string `json:"status,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Role != nil && !IsValidRole(*r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of STAFF, HR, ADMIN",
		})
	}

	if r.Status != nil && *r.Status != string(StatusActive) && *r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be ACTIVE or INACTIVE",
		})
	}

	if r.LocationID != nil && *r.LocationID != "" && !validator.IsValidUUID(*r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	EmployeeCode  string  `json:"employee_code"`
	Role          string  `json:"role"`
	Status        string  `json:"status"`
	LocationID    *string `json:"location_id,omitempty"`
	LocationName  *string `json:"location_name,omitempty"`
	DateOfJoining string  `json:"date_of_joining"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		EmployeeCode:  u.EmployeeCode,
		Role:          string(u.Role),
		Status:        string(u.Status),
		LocationID:    u.LocationID,
		LocationName:  u.LocationName,
		DateOfJoining: u.DateOfJoining.Format("2006-01-02"),
	}
}
