// internal/domain/notification/notification.go
package notification

import (
	"errors"
	"fmt"
	"time"
)

// ListLimit caps how many notifications a single listing returns.
const ListLimit = 50

// ErrNotFound is returned when a notification does not exist or belongs to another recipient.
var ErrNotFound = errors.New("notification not found")

// RecipientType is the role category a notification targets.
type RecipientType string

const (
	RecipientAdmin      RecipientType = "admin"
	RecipientAccountant RecipientType = "accountant"
	RecipientCompany    RecipientType = "company"
)

// Valid reports whether t is one of the known recipient types.
func (t RecipientType) Valid() bool {
	switch t {
	case RecipientAdmin, RecipientAccountant, RecipientCompany:
		return true
	}
	return false
}

// ParseRecipientType converts a raw string into a RecipientType.
func ParseRecipientType(s string) (RecipientType, error) {
	t := RecipientType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown recipient type %q", s)
	}
	return t, nil
}

// Recipient identifies who a notification is addressed to.
type Recipient struct {
	Type RecipientType
	ID   int64
}

func (r Recipient) String() string {
	return fmt.Sprintf("%s:%d", r.Type, r.ID)
}

// Notification corresponds to a row of the 'notifications' table.
type Notification struct {
	ID            int64         `db:"id" json:"id"`
	RecipientType RecipientType `db:"recipient_type" json:"recipient_type"`
	RecipientID   int64         `db:"recipient_id" json:"recipient_id"`
	Message       string        `db:"message" json:"message"`
	IsRead        bool          `db:"is_read" json:"is_read"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// Recipient returns the recipient the notification is addressed to.
func (n *Notification) Recipient() Recipient {
	return Recipient{Type: n.RecipientType, ID: n.RecipientID}
}
