package task

import (
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignTaskRequest struct {
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (r *AssignTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if r.DueDate != nil && *r.DueDate != "" {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTaskRequest struct {
	ID          string  `json:"-"`
	Status      *string `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !IsValidStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PENDING, IN_PROGRESS, COMPLETED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TaskResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Username       *string `json:"username,omitempty"`
	AssignedBy     *string `json:"assigned_by,omitempty"`
	AssignedByName *string `json:"assigned_by_name,omitempty"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	DueDate        *string `json:"due_date,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

func ToResponse(t Task) TaskResponse {
	var dueDate *string
	if t.DueDate != nil {
		formatted := t.DueDate.Format("2006-01-02")
		dueDate = &formatted
	}

	return TaskResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		Username:       t.Username,
		AssignedBy:     t.AssignedBy,
		AssignedByName: t.AssignedByName,
		Title:          t.Title,
		Description:    t.Description,
		DueDate:        dueDate,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
