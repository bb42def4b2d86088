package notification

import (
	"context"
	"fmt"

	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/sse"
)

type NotificationServiceImpl struct {
	NotificationRepository notification.Repository
	UserRepository         user.UserRepository
	Hub                    *sse.Hub
}

func NewNotificationService(
	notificationRepo notification.Repository,
	userRepo user.UserRepository,
	hub *sse.Hub,
) notification.Service {
	return &NotificationServiceImpl{
		NotificationRepository: notificationRepo,
		UserRepository:         userRepo,
		Hub:                    hub,
	}
}

// resolveRecipients expands a notification into the user IDs that receive it.
func (s *NotificationServiceImpl) resolveRecipients(ctx context.Context, input notification.NotifyInput) ([]string, error) {
	switch input.Type {
	case notification.TypeMessage, notification.TypeTask:
		if input.TargetUserID == nil || *input.TargetUserID == "" {
			return nil, notification.ErrMissingTarget
		}
		return []string{*input.TargetUserID}, nil

	case notification.TypeAttendanceRequest:
		return s.UserRepository.ListActiveIDsByRoles(ctx, []user.Role{user.RoleAdmin, user.RoleHR})

	case notification.TypeAnnouncement:
		return s.UserRepository.ListActiveIDsByRoles(ctx, []user.Role{user.RoleStaff, user.RoleHR, user.RoleAdmin})

	default:
		return nil, notification.ErrUnknownType
	}
}

// Notify implements notification.Service.
func (s *NotificationServiceImpl) Notify(ctx context.Context, input notification.NotifyInput) error {
	recipients, err := s.resolveRecipients(ctx, input)
	if err != nil {
		return err
	}

	for _, recipientID := range recipients {
		created, err := s.NotificationRepository.Create(ctx, notification.Notification{
			UserID:   recipientID,
			SenderID: input.SenderID,
			Type:     input.Type,
			Title:    input.Title,
			Message:  input.Message,
		})
		if err != nil {
			return fmt.Errorf("failed to store notification: %w", err)
		}

		s.Hub.Publish(recipientID, sse.Event{
			UserID: recipientID,
			Event:  "notification",
			Data:   notification.ToResponse(created),
		})
	}

	return nil
}

// ListMine implements notification.Service.
func (s *NotificationServiceImpl) ListMine(ctx context.Context) ([]notification.NotificationResponse, error) {
	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := s.NotificationRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notification.ToResponse(n))
	}

	return responses, nil
}

// MarkRead implements notification.Service.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	n, err := s.NotificationRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return notification.ErrUnauthorized
	}

	return s.NotificationRepository.MarkRead(ctx, id)
}

// Delete implements notification.Service.
func (s *NotificationServiceImpl) Delete(ctx context.Context, id string) error {
	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	n, err := s.NotificationRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return notification.ErrUnauthorized
	}

	return s.NotificationRepository.Delete(ctx, id)
}
