package telegram

import (
	"errors"
	"strings"
	"testing"

	"accounting_docs_service/internal/app"
	"accounting_docs_service/internal/domain/notification"
	"accounting_docs_service/internal/infra/logger"
	"accounting_docs_service/internal/testutil"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeClient struct {
	sent []sentMessage
	err  error
}

func (f *fakeClient) SendMessage(chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return f.err
}

const (
	adminUserID = 1
	adminChatID = 555
)

func TestAdminForwarder(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	fwd := NewAdminForwarder(client, adminUserID, adminChatID)

	tests := []struct {
		name     string
		n        notification.Notification
		wantSent bool
	}{
		{"admin", notification.Notification{RecipientType: notification.RecipientAdmin, RecipientID: adminUserID, Message: "new company"}, true},
		{"other admin", notification.Notification{RecipientType: notification.RecipientAdmin, RecipientID: 2, Message: "x"}, false},
		{"accountant", notification.Notification{RecipientType: notification.RecipientAccountant, RecipientID: adminUserID, Message: "x"}, false},
	}
	for _, tt := range tests {
		before := len(client.sent)
		if err := fwd.Forward(t.Context(), &tt.n); err != nil {
			t.Fatalf("%s: Forward() unexpected error: %v", tt.name, err)
		}
		if sent := len(client.sent) > before; sent != tt.wantSent {
			t.Errorf("%s: sent = %v, want %v", tt.name, sent, tt.wantSent)
		}
	}
	if client.sent[0] != (sentMessage{chatID: adminChatID, text: "new company"}) {
		t.Errorf("sent = %+v", client.sent[0])
	}

	client.err = errors.New("blocked by user")
	n := notification.Notification{RecipientType: notification.RecipientAdmin, RecipientID: adminUserID, Message: "y"}
	if err := fwd.Forward(t.Context(), &n); !errors.Is(err, client.err) {
		t.Errorf("Forward() error = %v, want wrapped client error", err)
	}
}

func TestCommandHandlers(t *testing.T) {
	t.Parallel()

	notifs := app.NewNotificationService(testutil.NewNotificationRepo(testutil.NewClock()), nil, logger.Discard())
	h := NewCommandHandlers(notifs, adminUserID, adminChatID, logger.Discard())
	ctx := t.Context()
	admin := notification.Recipient{Type: notification.RecipientAdmin, ID: adminUserID}

	if got := h.Unread(ctx, adminChatID); got != "No unread notifications." {
		t.Errorf("Unread() on empty inbox = %q", got)
	}

	for _, msg := range []string{"first", "second"} {
		if _, err := notifs.Notify(ctx, admin, msg); err != nil {
			t.Fatalf("Notify() unexpected error: %v", err)
		}
	}

	if got := h.Start(ctx, adminChatID); !strings.Contains(got, "2 unread") {
		t.Errorf("Start() = %q, want unread count 2", got)
	}
	got := h.Unread(ctx, adminChatID)
	if !strings.Contains(got, "first") || strings.Index(got, "second") > strings.Index(got, "first") {
		t.Errorf("Unread() = %q, want both messages newest first", got)
	}

	if got := h.ReadAll(ctx, 999); !strings.Contains(got, "administrator") {
		t.Errorf("ReadAll() from stranger = %q, want refusal", got)
	}
	if count, _ := notifs.UnreadCount(ctx, admin); count != 2 {
		t.Fatalf("stranger changed the inbox: unread = %d", count)
	}

	if got := h.ReadAll(ctx, adminChatID); got != "All notifications marked as read." {
		t.Errorf("ReadAll() = %q", got)
	}
	if count, _ := notifs.UnreadCount(ctx, admin); count != 0 {
		t.Errorf("unread after ReadAll() = %d, want 0", count)
	}
}
