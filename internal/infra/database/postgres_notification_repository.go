// internal/infra/database/postgres_notification_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"accounting_docs_service/internal/domain/notification"

	"github.com/jmoiron/sqlx"
)

const notificationColumns = `id, recipient_type, recipient_id, message, is_read, created_at`

type PostgresNotificationRepository struct {
	db *sqlx.DB
}

func NewPostgresNotificationRepository(db *sqlx.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	query := `INSERT INTO notifications (recipient_type, recipient_id, message, is_read)
               VALUES ($1, $2, $3, FALSE)
               RETURNING id, is_read, created_at`
	err := r.db.QueryRowxContext(ctx, query, n.RecipientType, n.RecipientID, n.Message).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepository) ListForRecipient(ctx context.Context, rcpt notification.Recipient) ([]*notification.Notification, error) {
	query := `SELECT ` + notificationColumns + `
               FROM notifications
               WHERE recipient_type = $1 AND recipient_id = $2
               ORDER BY created_at DESC, id DESC
               LIMIT $3`
	list := make([]*notification.Notification, 0)
	if err := r.db.SelectContext(ctx, &list, query, rcpt.Type, rcpt.ID, notification.ListLimit); err != nil {
		return nil, fmt.Errorf("error listing notifications for %s: %w", rcpt, err)
	}
	return list, nil
}

// MarkRead scopes the update by owner, so a foreign id and a missing id are
// indistinguishable to the caller.
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id int64, rcpt notification.Recipient) error {
	query := `UPDATE notifications SET is_read = TRUE
               WHERE id = $1 AND recipient_type = $2 AND recipient_id = $3`
	res, err := r.db.ExecContext(ctx, query, id, rcpt.Type, rcpt.ID)
	if err != nil {
		return fmt.Errorf("error marking notification %d as read: %w", id, err)
	}
	return expectAffected(res, notification.ErrNotFound)
}

func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, rcpt notification.Recipient) error {
	query := `UPDATE notifications SET is_read = TRUE
               WHERE recipient_type = $1 AND recipient_id = $2 AND is_read = FALSE`
	if _, err := r.db.ExecContext(ctx, query, rcpt.Type, rcpt.ID); err != nil {
		return fmt.Errorf("error marking all notifications as read for %s: %w", rcpt, err)
	}
	return nil
}

func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, rcpt notification.Recipient) (int, error) {
	query := `SELECT COUNT(*) FROM notifications
               WHERE recipient_type = $1 AND recipient_id = $2 AND is_read = FALSE`
	var count int
	if err := r.db.GetContext(ctx, &count, query, rcpt.Type, rcpt.ID); err != nil {
		return 0, fmt.Errorf("error counting unread notifications for %s: %w", rcpt, err)
	}
	return count, nil
}

func (r *PostgresNotificationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notification %d: %w", id, err)
	}
	return expectAffected(res, notification.ErrNotFound)
}

// expectAffected returns notFound when the statement touched no rows.
func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// isNoRows reports whether err signals an empty single-row result.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
