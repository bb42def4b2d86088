package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/domain/task"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/timeutil"
)

type TaskServiceImpl struct {
	TaskRepository      task.TaskRepository
	UserRepository      user.UserRepository
	NotificationService notification.Service
}

func NewTaskService(
	taskRepo task.TaskRepository,
	userRepo user.UserRepository,
	notificationSvc notification.Service,
) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository:      taskRepo,
		UserRepository:      userRepo,
		NotificationService: notificationSvc,
	}
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	created, err := s.TaskRepository.Create(ctx, task.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusPending,
	})
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task.ToResponse(created), nil
}

// Assign implements task.TaskService.
func (s *TaskServiceImpl) Assign(ctx context.Context, req task.AssignTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	assignerID, role, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if !role.IsReviewer() {
		return task.TaskResponse{}, user.ErrReviewerAccessRequired
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return task.TaskResponse{}, err
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *req.DueDate, timeutil.IST)
		if err == nil {
			dueDate = &parsed
		}
	}

	created, err := s.TaskRepository.Create(ctx, task.Task{
		UserID:      req.UserID,
		AssignedBy:  &assignerID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Status:      task.StatusPending,
	})
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	message := fmt.Sprintf("You have been assigned a new task: %s", created.Title)
	err = s.NotificationService.Notify(ctx, notification.NotifyInput{
		Type:         notification.TypeTask,
		Title:        "New task assigned",
		Message:      &message,
		TargetUserID: &created.UserID,
		SenderID:     &assignerID,
	})
	if err != nil {
		slog.Warn("Failed to notify task assignee", "task_id", created.ID, "error", err)
	}

	return task.ToResponse(created), nil
}

// ListMine implements task.TaskService.
func (s *TaskServiceImpl) ListMine(ctx context.Context) ([]task.TaskResponse, error) {
	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.listFor(ctx, userID)
}

// ListForUser implements task.TaskService.
func (s *TaskServiceImpl) ListForUser(ctx context.Context, userID string) ([]task.TaskResponse, error) {
	callerID, role, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if callerID != userID && !role.IsReviewer() {
		return nil, task.ErrTaskAccessDenied
	}

	return s.listFor(ctx, userID)
}

func (s *TaskServiceImpl) listFor(ctx context.Context, userID string) ([]task.TaskResponse, error) {
	tasks, err := s.TaskRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, task.ToResponse(t))
	}

	return responses, nil
}

// Update implements task.TaskService.
func (s *TaskServiceImpl) Update(ctx context.Context, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	t, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if t.UserID != userID {
		return task.TaskResponse{}, task.ErrTaskAccessDenied
	}

	if req.Status != nil {
		t.Status = task.Status(*req.Status)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}

	if err := s.TaskRepository.Update(ctx, t); err != nil {
		return task.TaskResponse{}, err
	}

	return task.ToResponse(t), nil
}

// Delete implements task.TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, id string) error {
	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	t, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.UserID != userID {
		return task.ErrTaskAccessDenied
	}

	return s.TaskRepository.Delete(ctx, id)
}
