package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)

	GetByID(ctx context.Context, id string) (Notification, error)

	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]Notification, error)

	MarkRead(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
}
