// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"accounting_docs_service/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// AdminInbox is the subset of the notification service the bot commands use.
type AdminInbox interface {
	List(ctx context.Context, r notification.Recipient) ([]*notification.Notification, error)
	MarkAllRead(ctx context.Context, r notification.Recipient) error
	UnreadCount(ctx context.Context, r notification.Recipient) (int, error)
}

// maxListed caps how many unread notifications /unread prints.
const maxListed = 10

// CommandHandlers answers the admin's Telegram commands against the admin inbox.
type CommandHandlers struct {
	inbox       AdminInbox
	admin       notification.Recipient
	adminChatID int64
	logger      *logrus.Entry
}

func NewCommandHandlers(inbox AdminInbox, adminUserID, adminChatID int64, logger *logrus.Entry) *CommandHandlers {
	return &CommandHandlers{
		inbox:       inbox,
		admin:       notification.Recipient{Type: notification.RecipientAdmin, ID: adminUserID},
		adminChatID: adminChatID,
		logger:      logger,
	}
}

// Register wires the commands into the bot.
func (h *CommandHandlers) Register(ctx context.Context, b *telebot.Bot) {
	b.Handle("/start", func(c telebot.Context) error {
		return c.Send(h.Start(ctx, c.Sender().ID))
	})
	b.Handle("/unread", func(c telebot.Context) error {
		return c.Send(h.Unread(ctx, c.Sender().ID))
	})
	b.Handle("/readall", func(c telebot.Context) error {
		return c.Send(h.ReadAll(ctx, c.Sender().ID))
	})
}

func (h *CommandHandlers) authorized(command string, senderID int64) (*logrus.Entry, bool) {
	logCtx := h.logger.WithFields(logrus.Fields{"command": command, "sender_id": senderID})
	if senderID != h.adminChatID {
		logCtx.Warn("Unauthorized access attempt")
		return logCtx, false
	}
	logCtx.Info("Processing command")
	return logCtx, true
}

// Start greets the admin with the current unread count.
func (h *CommandHandlers) Start(ctx context.Context, senderID int64) string {
	logCtx, ok := h.authorized("/start", senderID)
	if !ok {
		return "This bot only serves the system administrator."
	}
	count, err := h.inbox.UnreadCount(ctx, h.admin)
	if err != nil {
		logCtx.WithError(err).Error("Failed to count unread notifications")
		return "Could not load your notifications. Please try again later."
	}
	return fmt.Sprintf("Hello! You have %d unread notification(s). Use /unread to list them and /readall to mark them read.", count)
}

// Unread lists the newest unread admin notifications.
func (h *CommandHandlers) Unread(ctx context.Context, senderID int64) string {
	logCtx, ok := h.authorized("/unread", senderID)
	if !ok {
		return "This bot only serves the system administrator."
	}
	list, err := h.inbox.List(ctx, h.admin)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list notifications")
		return "Could not load your notifications. Please try again later."
	}

	var sb strings.Builder
	listed := 0
	for _, n := range list {
		if n.IsRead {
			continue
		}
		if listed == maxListed {
			sb.WriteString("…\n")
			break
		}
		fmt.Fprintf(&sb, "• [%s] %s\n", n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
		listed++
	}
	if listed == 0 {
		return "No unread notifications."
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ReadAll marks every admin notification as read.
func (h *CommandHandlers) ReadAll(ctx context.Context, senderID int64) string {
	logCtx, ok := h.authorized("/readall", senderID)
	if !ok {
		return "This bot only serves the system administrator."
	}
	if err := h.inbox.MarkAllRead(ctx, h.admin); err != nil {
		logCtx.WithError(err).Error("Failed to mark notifications as read")
		return "Could not update your notifications. Please try again later."
	}
	return "All notifications marked as read."
}
