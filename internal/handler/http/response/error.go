package response

import (
	"errors"
	"net/http"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/domain/auth"
	"github.com/punchdesk/attendance-backend-go/internal/domain/location"
	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/domain/request"
	"github.com/punchdesk/attendance-backend-go/internal/domain/task"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var radiusErr *attendance.OutsideRadiusError
	if errors.As(err, &radiusErr) {
		Forbidden(w, radiusErr.Error())
		return
	}

	var completedErr *attendance.AlreadyCompletedError
	if errors.As(err, &completedErr) {
		details := make(map[string]string)
		if completedErr.PunchInTime != nil {
			details["punch_in_time"] = *completedErr.PunchInTime
		}
		if completedErr.PunchOutTime != nil {
			details["punch_out_time"] = *completedErr.PunchOutTime
		}
		Conflict(w, completedErr.Error(), details)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrInvalidSignupSecret):
		Forbidden(w, "Invalid signup secret")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameTaken):
		Conflict(w, "Username is already taken", nil)
	case errors.Is(err, user.ErrEmployeeCodeTaken):
		Conflict(w, "Employee code already exists", nil)
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrReviewerAccessRequired):
		Forbidden(w, "Only ADMIN or HR can perform this action")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Correction request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Attendance request not found")
	case errors.Is(err, request.ErrDuplicateRequest):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, request.ErrOutsideRequestWindow):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, request.ErrPunchOrder):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, request.ErrAlreadyProcessed):
		Conflict(w, err.Error(), nil)

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrInvalidLocationURL):
		BadRequest(w, err.Error(), nil)

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrTaskAccessDenied):
		Forbidden(w, err.Error())

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, notification.ErrMissingTarget):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
