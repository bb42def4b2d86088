package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeMessage           NotificationType = "MESSAGE"
	TypeTask              NotificationType = "TASK"
	TypeAttendanceRequest NotificationType = "ATTENDANCE_REQUEST"
	TypeAnnouncement      NotificationType = "ANNOUNCEMENT"
)

type Notification struct {
	ID        string
	UserID    string
	SenderID  *string
	Type      NotificationType
	Title     string
	Message   *string
	IsRead    bool
	CreatedAt time.Time
}

type NotificationResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   *string `json:"message,omitempty"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`
}

// SSETokenResponse carries the short-lived token used to open the event
// stream, since EventSource cannot send Authorization headers.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

func ToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
