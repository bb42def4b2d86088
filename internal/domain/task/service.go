package task

import "context"

type TaskService interface {
	// Create adds a task for the authenticated user themselves.
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)

	// Assign creates a task for another user and notifies them.
	Assign(ctx context.Context, req AssignTaskRequest) (TaskResponse, error)

	// ListMine retrieves the authenticated user's tasks.
	ListMine(ctx context.Context) ([]TaskResponse, error)

	// ListForUser retrieves another user's tasks; owner, ADMIN and HR only.
	ListForUser(ctx context.Context, userID string) ([]TaskResponse, error)

	// Update modifies status/description; owner only.
	Update(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error)

	// Delete removes a task; owner only.
	Delete(ctx context.Context, id string) error
}
