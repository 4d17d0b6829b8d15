package app

import (
	"errors"
	"testing"

	"accounting_docs_service/internal/domain/company"
	"accounting_docs_service/internal/domain/notification"
	"accounting_docs_service/internal/infra/logger"
	"accounting_docs_service/internal/testutil"
)

func newDirectory(t *testing.T) (*DirectoryService, *NotificationService) {
	t.Helper()
	clock := testutil.NewClock()
	notifs := NewNotificationService(testutil.NewNotificationRepo(clock), nil, logger.Discard())
	return NewDirectoryService(testutil.NewCompanyRepo(clock), notifs, logger.Discard(), adminUserID), notifs
}

func TestAddAccountant(t *testing.T) {
	t.Parallel()

	dir, _ := newDirectory(t)
	a, err := dir.AddAccountant(t.Context(), " Ana ", "Ana@Example.com")
	if err != nil {
		t.Fatalf("AddAccountant() unexpected error: %v", err)
	}
	if a.Name != "Ana" || a.Email != "ana@example.com" {
		t.Errorf("AddAccountant() = %+v, want trimmed name and lower-case email", a)
	}

	if _, err := dir.AddAccountant(t.Context(), "Ana Two", "ana@example.com"); !errors.Is(err, company.ErrDuplicateEmail) {
		t.Errorf("duplicate AddAccountant() error = %v, want ErrDuplicateEmail", err)
	}
	if _, err := dir.AddAccountant(t.Context(), "", "x@example.com"); !errors.Is(err, ErrValidation) {
		t.Errorf("AddAccountant(no name) error = %v, want ErrValidation", err)
	}
	if _, err := dir.AddAccountant(t.Context(), "Bob", "not-an-email"); !errors.Is(err, ErrValidation) {
		t.Errorf("AddAccountant(bad email) error = %v, want ErrValidation", err)
	}
}

func TestAddCompanyAndAssign(t *testing.T) {
	t.Parallel()

	dir, notifs := newDirectory(t)
	ctx := t.Context()

	a, err := dir.AddAccountant(ctx, "Ana", "ana@example.com")
	if err != nil {
		t.Fatalf("AddAccountant() unexpected error: %v", err)
	}

	missing := int64(99)
	if _, err := dir.AddCompany(ctx, "Acme", "B123", "acme@example.com", &missing); !errors.Is(err, company.ErrAccountantNotFound) {
		t.Fatalf("AddCompany(unknown accountant) error = %v, want ErrAccountantNotFound", err)
	}

	c, err := dir.AddCompany(ctx, "Acme", "B123", "acme@example.com", nil)
	if err != nil {
		t.Fatalf("AddCompany() unexpected error: %v", err)
	}
	if c.AccountantID != nil {
		t.Errorf("AccountantID = %v, want nil", *c.AccountantID)
	}
	admin := notification.Recipient{Type: notification.RecipientAdmin, ID: adminUserID}
	inbox, _ := notifs.List(ctx, admin)
	if len(inbox) != 1 || inbox[0].Message != "Company Acme has no accountant assigned" {
		t.Errorf("admin notifications = %+v", inbox)
	}

	assigned, err := dir.AssignAccountant(ctx, c.ID, a.ID)
	if err != nil {
		t.Fatalf("AssignAccountant() unexpected error: %v", err)
	}
	if assigned.AccountantID == nil || *assigned.AccountantID != a.ID {
		t.Errorf("AccountantID after assignment = %v, want %d", assigned.AccountantID, a.ID)
	}

	list, _ := notifs.List(ctx, notification.Recipient{Type: notification.RecipientAccountant, ID: a.ID})
	if len(list) != 1 || list[0].Message != "You have been assigned to company Acme" {
		t.Errorf("accountant notifications = %+v", list)
	}

	if _, err := dir.AssignAccountant(ctx, 500, a.ID); !errors.Is(err, company.ErrCompanyNotFound) {
		t.Errorf("AssignAccountant(unknown company) error = %v, want ErrCompanyNotFound", err)
	}
	if _, err := dir.AssignAccountant(ctx, c.ID, 500); !errors.Is(err, company.ErrAccountantNotFound) {
		t.Errorf("AssignAccountant(unknown accountant) error = %v, want ErrAccountantNotFound", err)
	}

	companies, err := dir.Companies(ctx)
	if err != nil || len(companies) != 1 {
		t.Errorf("Companies() = %v, %v; want one company", companies, err)
	}
	accountants, err := dir.Accountants(ctx)
	if err != nil || len(accountants) != 1 {
		t.Errorf("Accountants() = %v, %v; want one accountant", accountants, err)
	}
}
