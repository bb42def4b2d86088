package notification

import "context"

// NotifyInput describes one notification to store and push live.
// TASK and MESSAGE require TargetUserID; ATTENDANCE_REQUEST fans out to
// active ADMIN/HR users; ANNOUNCEMENT fans out to every active user.
type NotifyInput struct {
	Type         NotificationType
	Title        string
	Message      *string
	TargetUserID *string
	SenderID     *string
}

type Service interface {
	// Notify persists the notification for each recipient and pushes it to
	// any live SSE subscribers.
	Notify(ctx context.Context, input NotifyInput) error

	// ListMine retrieves the authenticated user's notifications.
	ListMine(ctx context.Context) ([]NotificationResponse, error)

	// MarkRead marks one of the authenticated user's notifications as read.
	MarkRead(ctx context.Context, id string) error

	// Delete removes one of the authenticated user's notifications.
	Delete(ctx context.Context, id string) error
}
