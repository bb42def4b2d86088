package request

import (
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	Date     string `json:"date"`
	PunchIn  string `json:"punch_in"`
	PunchOut string `json:"punch_out"`
	Reason   string `json:"reason"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.PunchIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_in",
			Message: "punch_in is required",
		})
	}

	if validator.IsEmpty(r.PunchOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_out",
			Message: "punch_out is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(DecisionAccept) && r.Status != string(DecisionReject) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be 'ACCEPT' or 'REJECT'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestFilter struct {
	Status    *string
	StartDate *string
	EndDate   *string
	UserID    *string
	Page      int
	Limit     int
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" && !IsValidStatus(*f.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PENDING, ACCEPTED, REJECTED",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.UserID != nil && *f.UserID != "" && !validator.IsValidUUID(*f.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Username     *string `json:"username,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Date         string  `json:"date"`
	PunchIn      string  `json:"punch_in"`
	PunchOut     string  `json:"punch_out"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

type ListRequestsResponse struct {
	Requests   []RequestResponse `json:"requests"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
