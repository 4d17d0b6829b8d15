package notification

import "testing"

func TestParseRecipientType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    RecipientType
		wantErr bool
	}{
		{in: "admin", want: RecipientAdmin},
		{in: "accountant", want: RecipientAccountant},
		{in: "company", want: RecipientCompany},
		{in: "Accountant", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRecipientType(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRecipientType(%q) error = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRecipientType(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseRecipientType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNotificationRecipient(t *testing.T) {
	t.Parallel()

	n := &Notification{RecipientType: RecipientAccountant, RecipientID: 42}
	r := n.Recipient()
	if r != (Recipient{Type: RecipientAccountant, ID: 42}) {
		t.Errorf("Recipient() = %+v", r)
	}
	if r.String() != "accountant:42" {
		t.Errorf("String() = %q, want %q", r.String(), "accountant:42")
	}
}
