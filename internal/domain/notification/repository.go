// internal/domain/notification/repository.go
package notification

import (
	"context"
)

// Repository defines persistence operations for notifications.
type Repository interface {
	// Create inserts n with is_read=false and fills in ID and CreatedAt.
	Create(ctx context.Context, n *Notification) error
	// ListForRecipient returns at most ListLimit rows, newest first.
	ListForRecipient(ctx context.Context, r Recipient) ([]*Notification, error)
	// MarkRead returns ErrNotFound when no row with id belongs to r.
	MarkRead(ctx context.Context, id int64, r Recipient) error
	MarkAllRead(ctx context.Context, r Recipient) error
	CountUnread(ctx context.Context, r Recipient) (int, error)
	Delete(ctx context.Context, id int64) error
}
