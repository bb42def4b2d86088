package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)

	GetByID(ctx context.Context, id string) (Task, error)

	// ListByUser retrieves a user's tasks, newest first.
	ListByUser(ctx context.Context, userID string) ([]Task, error)

	Update(ctx context.Context, t Task) error

	Delete(ctx context.Context, id string) error
}
