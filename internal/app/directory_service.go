package app

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"accounting_docs_service/internal/domain/company"
	"accounting_docs_service/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

// DirectoryService manages companies and accountants on behalf of the admin.
type DirectoryService struct {
	repo     company.Repository
	notifier Notifier
	logger   *logrus.Entry
	admin    notification.Recipient
}

func NewDirectoryService(repo company.Repository, notifier Notifier, logger *logrus.Entry, adminUserID int64) *DirectoryService {
	return &DirectoryService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		admin:    notification.Recipient{Type: notification.RecipientAdmin, ID: adminUserID},
	}
}

func normalizeContact(name, email string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", "", fmt.Errorf("%w: invalid email %q", ErrValidation, email)
	}
	return name, email, nil
}

// AddAccountant registers a new accountant.
func (s *DirectoryService) AddAccountant(ctx context.Context, name, email string) (*company.Accountant, error) {
	name, email, err := normalizeContact(name, email)
	if err != nil {
		return nil, err
	}

	a := &company.Accountant{Name: name, Email: email}
	if err := s.repo.CreateAccountant(ctx, a); err != nil {
		if errors.Is(err, company.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create accountant in repository: %w", err)
	}

	s.logger.WithField("accountant_id", a.ID).Info("Accountant added")
	return a, nil
}

// AddCompany registers a new company, optionally assigned to an accountant.
func (s *DirectoryService) AddCompany(ctx context.Context, name, taxID, email string, accountantID *int64) (*company.Company, error) {
	name, email, err := normalizeContact(name, email)
	if err != nil {
		return nil, err
	}

	if accountantID != nil {
		if _, err := s.repo.GetAccountant(ctx, *accountantID); err != nil {
			return nil, err
		}
	}

	c := &company.Company{
		Name:         name,
		TaxID:        strings.TrimSpace(taxID),
		Email:        email,
		AccountantID: accountantID,
	}
	if err := s.repo.CreateCompany(ctx, c); err != nil {
		if errors.Is(err, company.ErrDuplicateEmail) || errors.Is(err, company.ErrAccountantNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create company in repository: %w", err)
	}

	s.logger.WithField("company_id", c.ID).Info("Company added")
	if accountantID != nil {
		s.announceAssignment(ctx, c, *accountantID)
	} else {
		// Stays in the admin inbox until someone is assigned.
		msg := fmt.Sprintf("Company %s has no accountant assigned", c.Name)
		if _, err := s.notifier.Notify(ctx, s.admin, msg); err != nil {
			s.logger.WithError(err).WithField("company_id", c.ID).Error("Failed to notify admin about unassigned company")
		}
	}
	return c, nil
}

// AssignAccountant makes accountantID responsible for companyID and tells the
// accountant about it.
func (s *DirectoryService) AssignAccountant(ctx context.Context, companyID, accountantID int64) (*company.Company, error) {
	if _, err := s.repo.GetAccountant(ctx, accountantID); err != nil {
		return nil, err
	}
	if err := s.repo.AssignAccountant(ctx, companyID, accountantID); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) || errors.Is(err, company.ErrAccountantNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to assign accountant: %w", err)
	}

	c, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	s.announceAssignment(ctx, c, accountantID)
	return c, nil
}

func (s *DirectoryService) Companies(ctx context.Context) ([]*company.Company, error) {
	return s.repo.ListCompanies(ctx)
}

func (s *DirectoryService) Accountants(ctx context.Context) ([]*company.Accountant, error) {
	return s.repo.ListAccountants(ctx)
}

func (s *DirectoryService) announceAssignment(ctx context.Context, c *company.Company, accountantID int64) {
	r := notification.Recipient{Type: notification.RecipientAccountant, ID: accountantID}
	msg := fmt.Sprintf("You have been assigned to company %s", c.Name)
	if _, err := s.notifier.Notify(ctx, r, msg); err != nil {
		s.logger.WithError(err).WithField("company_id", c.ID).Error("Failed to notify accountant about assignment")
	}
}
