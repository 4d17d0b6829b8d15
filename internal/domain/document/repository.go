// internal/domain/document/repository.go
package document

import (
	"context"
	"time"
)

// ProcessUpdate carries the fields stamped by a process call.
type ProcessUpdate struct {
	Status          Status
	Comments        string
	ProcessedBy     int64
	ProcessedByType string
	ProcessingDate  time.Time
	// RequireNew restricts the update to documents still in StatusNew.
	RequireNew bool
}

// PendingSummary counts documents awaiting review for one accountant.
type PendingSummary struct {
	AccountantID int64 `db:"accountant_id"`
	Count        int   `db:"pending_count"`
}

// Repository defines persistence operations for documents.
type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id int64) (*Document, error)
	List(ctx context.Context, f Filter) ([]*Document, error)
	// Process applies u in a single statement. When u.RequireNew is set and
	// the document exists but is not new, it returns ErrAlreadyProcessed.
	Process(ctx context.Context, id int64, u ProcessUpdate) (*Document, error)
	// PendingByAccountant summarises new documents created before cutoff,
	// grouped by the accountant assigned to the owning company.
	PendingByAccountant(ctx context.Context, cutoff time.Time) ([]PendingSummary, error)
}
