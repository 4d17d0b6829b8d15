package policy

import (
	"testing"

	"accounting_docs_service/internal/domain/notification"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{notification.RecipientAdmin, ManageDirectory, true},
		{notification.RecipientAdmin, ProcessDocuments, true},
		{notification.RecipientAccountant, ProcessDocuments, true},
		{notification.RecipientAccountant, UploadDocuments, false},
		{notification.RecipientAccountant, DeleteNotifications, false},
		{notification.RecipientCompany, UploadDocuments, true},
		{notification.RecipientCompany, ProcessDocuments, false},
		{notification.RecipientCompany, ManageDirectory, false},
		{Role("guest"), ReadNotifications, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action), func(t *testing.T) {
			t.Parallel()

			if got := Allowed(tt.role, tt.action); got != tt.want {
				t.Errorf("Allowed(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.want)
			}
		})
	}
}

func TestActions(t *testing.T) {
	t.Parallel()

	if got := len(Actions(notification.RecipientAdmin)); got != 7 {
		t.Errorf("len(Actions(admin)) = %d, want 7", got)
	}
	got := Actions(notification.RecipientCompany)
	want := []Action{ReadNotifications, MarkNotifications, UploadDocuments, ViewDocuments}
	if len(got) != len(want) {
		t.Fatalf("Actions(company) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Actions(company)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := Actions(Role("guest")); len(got) != 0 {
		t.Errorf("Actions(guest) = %v, want empty", got)
	}
}
