// internal/app/notification_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accounting_docs_service/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

// Forwarder relays a stored notification to an outside channel.
type Forwarder interface {
	Forward(ctx context.Context, n *notification.Notification) error
}

// NotificationService owns the notification read/unread bookkeeping.
type NotificationService struct {
	repo      notification.Repository
	forwarder Forwarder
	logger    *logrus.Entry
}

// NewNotificationService builds the service. forwarder may be nil.
func NewNotificationService(repo notification.Repository, forwarder Forwarder, logger *logrus.Entry) *NotificationService {
	return &NotificationService{
		repo:      repo,
		forwarder: forwarder,
		logger:    logger,
	}
}

// Notify stores a new unread notification for r and forwards it when a
// forwarder is configured. Forwarding failures are logged, not returned.
func (s *NotificationService) Notify(ctx context.Context, r notification.Recipient, message string) (*notification.Notification, error) {
	if !r.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown recipient type %q", ErrValidation, r.Type)
	}
	if r.ID <= 0 {
		return nil, fmt.Errorf("%w: recipient id must be positive", ErrValidation)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message must not be empty", ErrValidation)
	}

	n := &notification.Notification{
		RecipientType: r.Type,
		RecipientID:   r.ID,
		Message:       message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	log := s.logger.WithFields(logrus.Fields{"notification_id": n.ID, "recipient": r.String()})
	log.Debug("Notification created")

	if s.forwarder != nil {
		if err := s.forwarder.Forward(ctx, n); err != nil {
			log.WithError(err).Warn("Failed to forward notification")
		}
	}
	return n, nil
}

// List returns the newest notifications of r, never more than notification.ListLimit.
func (s *NotificationService) List(ctx context.Context, r notification.Recipient) ([]*notification.Notification, error) {
	list, err := s.repo.ListForRecipient(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if len(list) > notification.ListLimit {
		list = list[:notification.ListLimit]
	}
	return list, nil
}

// MarkRead marks one notification of r as read. It returns
// notification.ErrNotFound when the id is unknown or owned by someone else.
func (s *NotificationService) MarkRead(ctx context.Context, id int64, r notification.Recipient) error {
	if err := s.repo.MarkRead(ctx, id, r); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of r as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, r notification.Recipient) error {
	if err := s.repo.MarkAllRead(ctx, r); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, r notification.Recipient) (int, error) {
	count, err := s.repo.CountUnread(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// Delete removes a notification regardless of its recipient.
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	s.logger.WithField("notification_id", id).Info("Notification deleted")
	return nil
}
