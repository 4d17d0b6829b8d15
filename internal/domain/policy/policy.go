// Package policy maps each role to the actions it may perform.
package policy

import (
	"accounting_docs_service/internal/domain/notification"
)

// Action is a permission checked before an operation runs.
type Action string

const (
	ReadNotifications   Action = "notifications:read"
	MarkNotifications   Action = "notifications:mark"
	DeleteNotifications Action = "notifications:delete"
	UploadDocuments     Action = "documents:upload"
	ViewDocuments       Action = "documents:view"
	ProcessDocuments    Action = "documents:process"
	ManageDirectory     Action = "directory:manage"
)

// Role reuses the notification recipient categories.
type Role = notification.RecipientType

var table = map[Role]map[Action]bool{
	notification.RecipientAdmin: {
		ReadNotifications:   true,
		MarkNotifications:   true,
		DeleteNotifications: true,
		UploadDocuments:     true,
		ViewDocuments:       true,
		ProcessDocuments:    true,
		ManageDirectory:     true,
	},
	notification.RecipientAccountant: {
		ReadNotifications: true,
		MarkNotifications: true,
		ViewDocuments:     true,
		ProcessDocuments:  true,
	},
	notification.RecipientCompany: {
		ReadNotifications: true,
		MarkNotifications: true,
		UploadDocuments:   true,
		ViewDocuments:     true,
	},
}

// Allowed reports whether role may perform action. Unknown roles are denied.
func Allowed(role Role, action Action) bool {
	return table[role][action]
}

// Actions returns the actions granted to role.
func Actions(role Role) []Action {
	granted := make([]Action, 0, len(table[role]))
	for _, a := range []Action{
		ReadNotifications, MarkNotifications, DeleteNotifications,
		UploadDocuments, ViewDocuments, ProcessDocuments, ManageDirectory,
	} {
		if table[role][a] {
			granted = append(granted, a)
		}
	}
	return granted
}
