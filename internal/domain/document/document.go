// internal/domain/document/document.go
package document

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrInvalidStatus    = errors.New("status must be one of: processed, rejected")
	ErrAlreadyProcessed = errors.New("document has already been processed")
)

// Status is the accountant review state of an uploaded document.
type Status string

const (
	StatusNew       Status = "new"
	StatusProcessed Status = "processed"
	StatusRejected  Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusProcessed, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is expected out of s.
func (s Status) Terminal() bool {
	return s == StatusProcessed || s == StatusRejected
}

// ParseTargetStatus validates a status requested by a process call.
// Only terminal statuses are accepted.
func ParseTargetStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Terminal() {
		return "", fmt.Errorf("%w: got %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// CanTransition reports whether a document in state from may move to state to.
// With allowReprocess set, terminal documents may be overwritten by another
// terminal status.
func CanTransition(from, to Status, allowReprocess bool) bool {
	if !to.Terminal() {
		return false
	}
	if from == StatusNew {
		return true
	}
	return allowReprocess && from.Terminal()
}

// FileInfo describes the stored file attached to a document.
type FileInfo struct {
	FileName string `db:"file_name" json:"file_name"`
	FilePath string `db:"file_path" json:"file_path"`
	FileSize int64  `db:"file_size" json:"file_size"`
	MimeType string `db:"mime_type" json:"mime_type"`
}

// Document corresponds to a row of the 'documents' table.
type Document struct {
	ID            int64     `db:"id" json:"id"`
	CompanyID     int64     `db:"company_id" json:"company_id"`
	DocumentType  string    `db:"document_type" json:"document_type"`
	OperationType string    `db:"operation_type" json:"operation_type"`
	DocumentDate  time.Time `db:"document_date" json:"document_date"`
	VendorClient  string    `db:"vendor_client" json:"vendor_client"`
	Amount        float64   `db:"amount" json:"amount"`
	Reference     string    `db:"reference" json:"reference"`
	FileInfo
	Status          Status     `db:"status" json:"status"`
	Comments        string     `db:"comments" json:"comments"`
	ProcessedBy     *int64     `db:"processed_by" json:"processed_by,omitempty"`
	ProcessedByType *string    `db:"processed_by_type" json:"processed_by_type,omitempty"`
	ProcessingDate  *time.Time `db:"processing_date" json:"processing_date,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Label is a short human-readable identifier used in notification messages.
func (d *Document) Label() string {
	if d.Reference != "" {
		return d.Reference
	}
	if d.FileName != "" {
		return d.FileName
	}
	return fmt.Sprintf("#%d", d.ID)
}

// Validate checks the fields required on upload.
func (d *Document) Validate() error {
	var missing []string
	if strings.TrimSpace(d.DocumentType) == "" {
		missing = append(missing, "document_type")
	}
	if strings.TrimSpace(d.OperationType) == "" {
		missing = append(missing, "operation_type")
	}
	if d.DocumentDate.IsZero() {
		missing = append(missing, "document_date")
	}
	if strings.TrimSpace(d.FileName) == "" {
		missing = append(missing, "file_name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if d.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	return nil
}

// Filter narrows document listings.
type Filter struct {
	CompanyID    *int64
	AccountantID *int64
	Status       Status
}
