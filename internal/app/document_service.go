package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"accounting_docs_service/internal/domain/company"
	"accounting_docs_service/internal/domain/document"
	"accounting_docs_service/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

// Notifier creates notifications on behalf of other services.
type Notifier interface {
	Notify(ctx context.Context, r notification.Recipient, message string) (*notification.Notification, error)
}

// DocumentService handles uploads, scoped reads and the review lifecycle.
type DocumentService struct {
	docs      document.Repository
	companies company.Repository
	notifier  Notifier
	logger    *logrus.Entry

	// admin receives notices about uploads no accountant will see.
	admin notification.Recipient

	// allowReprocess lets a processed or rejected document be processed again.
	allowReprocess bool
	now            func() time.Time
}

func NewDocumentService(
	docs document.Repository,
	companies company.Repository,
	notifier Notifier,
	logger *logrus.Entry,
	allowReprocess bool,
	adminUserID int64,
) *DocumentService {
	return &DocumentService{
		docs:           docs,
		companies:      companies,
		notifier:       notifier,
		logger:         logger,
		admin:          notification.Recipient{Type: notification.RecipientAdmin, ID: adminUserID},
		allowReprocess: allowReprocess,
		now:            time.Now,
	}
}

// Upload records metadata for a file uploaded by companyID. The document
// starts in StatusNew. The company's accountant is notified, or the admin
// when no accountant is assigned yet.
func (s *DocumentService) Upload(ctx context.Context, companyID int64, d document.Document) (*document.Document, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	owner, err := s.companies.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load company %d: %w", companyID, err)
	}

	d.ID = 0
	d.CompanyID = companyID
	d.Status = document.StatusNew
	d.Comments = ""
	d.ProcessedBy = nil
	d.ProcessedByType = nil
	d.ProcessingDate = nil

	if err := s.docs.Create(ctx, &d); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	log := s.logger.WithFields(logrus.Fields{"document_id": d.ID, "company_id": companyID})
	log.Info("Document uploaded")

	if owner.AccountantID != nil {
		msg := fmt.Sprintf("%s uploaded a new document: %s", owner.Name, d.Label())
		s.notify(ctx, log, notification.Recipient{Type: notification.RecipientAccountant, ID: *owner.AccountantID}, msg)
	} else {
		log.Warn("Company has no assigned accountant; notifying admin")
		msg := fmt.Sprintf("%s uploaded document %s but has no assigned accountant", owner.Name, d.Label())
		s.notify(ctx, log, s.admin, msg)
	}
	return &d, nil
}

// Get returns the document if p may see it. Documents outside p's scope are
// reported as document.ErrNotFound.
func (s *DocumentService) Get(ctx context.Context, id int64, p notification.Recipient) (*document.Document, error) {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	visible, err := s.visibleTo(ctx, d, p)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, document.ErrNotFound
	}
	return d, nil
}

// List returns the documents in p's scope, optionally filtered by status.
func (s *DocumentService) List(ctx context.Context, p notification.Recipient, status document.Status) ([]*document.Document, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	f := document.Filter{Status: status}
	switch p.Type {
	case notification.RecipientAdmin:
	case notification.RecipientAccountant:
		f.AccountantID = &p.ID
	case notification.RecipientCompany:
		f.CompanyID = &p.ID
	default:
		return nil, ErrForbidden
	}

	list, err := s.docs.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return list, nil
}

// Process moves a document to processed or rejected, stamping the actor,
// time and comments, then notifies the owning company.
//
// Unless allowReprocess is set, a document that already left StatusNew is
// refused with document.ErrAlreadyProcessed.
func (s *DocumentService) Process(ctx context.Context, id int64, rawStatus, comments string, actor notification.Recipient) (*document.Document, error) {
	status, err := document.ParseTargetStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := s.Get(ctx, id, actor); err != nil {
		return nil, err
	}

	updated, err := s.docs.Process(ctx, id, document.ProcessUpdate{
		Status:          status,
		Comments:        comments,
		ProcessedBy:     actor.ID,
		ProcessedByType: string(actor.Type),
		ProcessingDate:  s.now().UTC(),
		RequireNew:      !s.allowReprocess,
	})
	if err != nil {
		if errors.Is(err, document.ErrNotFound) || errors.Is(err, document.ErrAlreadyProcessed) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to process document: %w", err)
	}

	log := s.logger.WithFields(logrus.Fields{
		"document_id": id,
		"status":      status,
		"actor":       actor.String(),
	})
	log.Info("Document processed")

	msg := fmt.Sprintf("Your document %s was %s", updated.Label(), status)
	if comments != "" {
		msg += ": " + comments
	}
	s.notify(ctx, log, notification.Recipient{Type: notification.RecipientCompany, ID: updated.CompanyID}, msg)
	return updated, nil
}

// RemindPending notifies every accountant who has documents still new after
// olderThan. It returns the number of reminders created.
func (s *DocumentService) RemindPending(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.now().Add(-olderThan)
	summaries, err := s.docs.PendingByAccountant(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to summarise pending documents: %w", err)
	}

	sent := 0
	for _, sum := range summaries {
		if sum.Count == 0 {
			continue
		}
		msg := fmt.Sprintf("You have %d document(s) awaiting review", sum.Count)
		r := notification.Recipient{Type: notification.RecipientAccountant, ID: sum.AccountantID}
		if _, err := s.notifier.Notify(ctx, r, msg); err != nil {
			s.logger.WithError(err).WithField("accountant_id", sum.AccountantID).Error("Failed to create pending reminder")
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *DocumentService) visibleTo(ctx context.Context, d *document.Document, p notification.Recipient) (bool, error) {
	switch p.Type {
	case notification.RecipientAdmin:
		return true, nil
	case notification.RecipientCompany:
		return d.CompanyID == p.ID, nil
	case notification.RecipientAccountant:
		owner, err := s.companies.GetCompany(ctx, d.CompanyID)
		if err != nil {
			if errors.Is(err, company.ErrCompanyNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("failed to load company %d: %w", d.CompanyID, err)
		}
		return owner.AccountantID != nil && *owner.AccountantID == p.ID, nil
	}
	return false, nil
}

// notify creates a notification and only logs failures; the triggering
// operation has already been committed.
func (s *DocumentService) notify(ctx context.Context, log *logrus.Entry, r notification.Recipient, msg string) {
	if _, err := s.notifier.Notify(ctx, r, msg); err != nil {
		log.WithError(err).WithField("recipient", r.String()).Error("Failed to create notification")
	}
}
