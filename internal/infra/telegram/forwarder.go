package telegram

import (
	"context"
	"fmt"

	"accounting_docs_service/internal/domain/notification"
	domainTelegram "accounting_docs_service/internal/domain/telegram"
)

// AdminForwarder mirrors notifications addressed to the configured admin
// user into that admin's Telegram chat. Other notifications are ignored.
type AdminForwarder struct {
	client      domainTelegram.Client
	adminUserID int64
	adminChatID int64
}

func NewAdminForwarder(client domainTelegram.Client, adminUserID, adminChatID int64) *AdminForwarder {
	return &AdminForwarder{
		client:      client,
		adminUserID: adminUserID,
		adminChatID: adminChatID,
	}
}

func (f *AdminForwarder) Forward(_ context.Context, n *notification.Notification) error {
	if n.RecipientType != notification.RecipientAdmin || n.RecipientID != f.adminUserID {
		return nil
	}
	if err := f.client.SendMessage(f.adminChatID, n.Message); err != nil {
		return fmt.Errorf("failed to send notification %d to telegram: %w", n.ID, err)
	}
	return nil
}
