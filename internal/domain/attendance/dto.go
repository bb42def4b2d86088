package attendance

import (
	"math"
	"strconv"
	"strings"

	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

// Coordinate accepts a JSON number or a numeric string; mobile clients send
// both. Parsing is deferred so the service can distinguish a missing
// coordinate from a non-numeric one.
type Coordinate struct {
	raw string
}

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	c.raw = strings.Trim(s, `"`)
	return nil
}

func (c Coordinate) Missing() bool {
	return strings.TrimSpace(c.raw) == ""
}

// Float returns the parsed value; ok is false when the raw input is not a
// finite number.
func (c Coordinate) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(c.raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// PunchRequest carries the punch coordinates. They are only required, and
// only checked, when the user's assigned location makes the geofence active.
type PunchRequest struct {
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

type PunchResponse struct {
	Message      string  `json:"message"`
	PunchInTime  *string `json:"punch_in_time,omitempty"`
	PunchOutTime *string `json:"punch_out_time,omitempty"`
	Location     *string `json:"location,omitempty"`
}

type StatusResponse struct {
	IsPunchedIn   bool    `json:"is_punched_in"`
	IsCompleted   bool    `json:"is_completed"`
	Message       string  `json:"message"`
	LastPunchTime *string `json:"last_punch_time,omitempty"`
	PunchInTime   *string `json:"punch_in_time,omitempty"`
	PunchOutTime  *string `json:"punch_out_time,omitempty"`
}

type SheetFilter struct {
	StartDate *string
	EndDate   *string
	UserID    *string
	Page      int
	Limit     int
}

func (f *SheetFilter) Validate() error {
	var errs validator.ValidationErrors

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

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 31
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SheetRow struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	EmployeeCode string  `json:"employee_code"`
	Date         string  `json:"date"`
	PunchInTime  *string `json:"punch_in_time,omitempty"`
	PunchOutTime *string `json:"punch_out_time,omitempty"`
	HoursWorked  *string `json:"hours_worked,omitempty"`
}

type SheetResponse struct {
	Records    []SheetRow `json:"records"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
