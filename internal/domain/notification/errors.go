package notification

import "errors"

// Notification domain errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUnauthorized         = errors.New("unauthorized to access this notification")
	ErrMissingTarget        = errors.New("target user is required for this notification type")
	ErrUnknownType          = errors.New("unknown notification type")
)
