package database

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"accounting_docs_service/internal/domain/company"
	"accounting_docs_service/internal/domain/document"
	"accounting_docs_service/internal/domain/notification"

	"github.com/jmoiron/sqlx"
)

// Integration tests are opt-in: set TEST_DATABASE_URL to a disposable
// PostgreSQL database. All tables are truncated before each test.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("integration tests are disabled; set TEST_DATABASE_URL to enable")
	}

	db, err := NewPostgresConnection(dsn, 10)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Migrate(t.Context(), db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	// Running twice must be a no-op.
	if err := Migrate(t.Context(), db); err != nil {
		t.Fatalf("re-running migrations: %v", err)
	}
	if _, err := db.Exec(`TRUNCATE notifications, documents, companies, accountants RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncating tables: %v", err)
	}
	return db
}

func seedCompany(t *testing.T, repo *PostgresCompanyRepository, withAccountant bool) (*company.Company, *company.Accountant) {
	t.Helper()
	ctx := t.Context()

	var acct *company.Accountant
	c := &company.Company{Name: "Acme", Email: fmt.Sprintf("acme-%d@example.com", time.Now().UnixNano())}
	if withAccountant {
		acct = &company.Accountant{Name: "Ana", Email: fmt.Sprintf("ana-%d@example.com", time.Now().UnixNano())}
		if err := repo.CreateAccountant(ctx, acct); err != nil {
			t.Fatalf("CreateAccountant() unexpected error: %v", err)
		}
		c.AccountantID = &acct.ID
	}
	if err := repo.CreateCompany(ctx, c); err != nil {
		t.Fatalf("CreateCompany() unexpected error: %v", err)
	}
	return c, acct
}

func TestPostgresNotificationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := t.Context()

	owner := notification.Recipient{Type: notification.RecipientAccountant, ID: 42}
	sameIDOtherRole := notification.Recipient{Type: notification.RecipientCompany, ID: 42}

	n := &notification.Notification{RecipientType: owner.Type, RecipientID: owner.ID, Message: "doc uploaded"}
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if n.ID == 0 || n.IsRead || n.CreatedAt.IsZero() {
		t.Fatalf("Create() returned %+v", n)
	}

	if err := repo.MarkRead(ctx, n.ID, sameIDOtherRole); !errors.Is(err, notification.ErrNotFound) {
		t.Errorf("MarkRead() by other role error = %v, want ErrNotFound", err)
	}
	for range 2 {
		if err := repo.MarkRead(ctx, n.ID, owner); err != nil {
			t.Fatalf("MarkRead() unexpected error: %v", err)
		}
	}

	list, err := repo.ListForRecipient(ctx, owner)
	if err != nil {
		t.Fatalf("ListForRecipient() unexpected error: %v", err)
	}
	if len(list) != 1 || !list[0].IsRead {
		t.Fatalf("ListForRecipient() = %+v, want one read notification", list)
	}

	for i := range notification.ListLimit + 5 {
		extra := &notification.Notification{RecipientType: owner.Type, RecipientID: owner.ID, Message: fmt.Sprintf("m%d", i)}
		if err := repo.Create(ctx, extra); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}
	list, err = repo.ListForRecipient(ctx, owner)
	if err != nil {
		t.Fatalf("ListForRecipient() unexpected error: %v", err)
	}
	if len(list) != notification.ListLimit {
		t.Fatalf("len(ListForRecipient()) = %d, want %d", len(list), notification.ListLimit)
	}
	for i := 1; i < len(list); i++ {
		prev, cur := list[i-1], list[i]
		if prev.CreatedAt.Before(cur.CreatedAt) || (prev.CreatedAt.Equal(cur.CreatedAt) && prev.ID < cur.ID) {
			t.Fatalf("ListForRecipient() out of order at %d", i)
		}
	}

	if err := repo.MarkAllRead(ctx, owner); err != nil {
		t.Fatalf("MarkAllRead() unexpected error: %v", err)
	}
	if count, err := repo.CountUnread(ctx, owner); err != nil || count != 0 {
		t.Errorf("CountUnread() = %d, %v; want 0", count, err)
	}

	if err := repo.Delete(ctx, n.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, n.ID); !errors.Is(err, notification.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestPostgresCompanyRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresCompanyRepository(db)
	ctx := t.Context()

	c, acct := seedCompany(t, repo, true)

	dup := &company.Company{Name: "Dup", Email: c.Email}
	if err := repo.CreateCompany(ctx, dup); !errors.Is(err, company.ErrDuplicateEmail) {
		t.Errorf("CreateCompany(duplicate) error = %v, want ErrDuplicateEmail", err)
	}
	if err := repo.AssignAccountant(ctx, c.ID, acct.ID+1000); !errors.Is(err, company.ErrAccountantNotFound) {
		t.Errorf("AssignAccountant(unknown) error = %v, want ErrAccountantNotFound", err)
	}
	if err := repo.AssignAccountant(ctx, c.ID+1000, acct.ID); !errors.Is(err, company.ErrCompanyNotFound) {
		t.Errorf("AssignAccountant(unknown company) error = %v, want ErrCompanyNotFound", err)
	}

	got, err := repo.GetCompany(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCompany() unexpected error: %v", err)
	}
	if got.AccountantID == nil || *got.AccountantID != acct.ID {
		t.Errorf("AccountantID = %v, want %d", got.AccountantID, acct.ID)
	}
	if _, err := repo.GetAccountant(ctx, acct.ID+1000); !errors.Is(err, company.ErrAccountantNotFound) {
		t.Errorf("GetAccountant(unknown) error = %v, want ErrAccountantNotFound", err)
	}
}

func TestPostgresDocumentRepository(t *testing.T) {
	db := setupTestDB(t)
	companies := NewPostgresCompanyRepository(db)
	repo := NewPostgresDocumentRepository(db)
	ctx := t.Context()

	c, acct := seedCompany(t, companies, true)

	d := &document.Document{
		CompanyID:     c.ID,
		DocumentType:  "invoice",
		OperationType: "purchase",
		DocumentDate:  time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Amount:        120.5,
		Reference:     "INV-1",
		FileInfo:      document.FileInfo{FileName: "inv-1.pdf"},
		Status:        document.StatusNew,
	}
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	orphan := *d
	orphan.CompanyID = c.ID + 1000
	if err := repo.Create(ctx, &orphan); !errors.Is(err, company.ErrCompanyNotFound) {
		t.Errorf("Create(unknown company) error = %v, want ErrCompanyNotFound", err)
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if got.Amount != 120.5 || got.Status != document.StatusNew || got.ProcessedBy != nil || got.ProcessedByType != nil {
		t.Errorf("GetByID() = %+v", got)
	}

	list, err := repo.List(ctx, document.Filter{AccountantID: &acct.ID, Status: document.StatusNew})
	if err != nil || len(list) != 1 {
		t.Fatalf("List(accountant, new) = %v, %v; want one document", list, err)
	}

	summaries, err := repo.PendingByAccountant(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("PendingByAccountant() unexpected error: %v", err)
	}
	if len(summaries) != 1 || summaries[0] != (document.PendingSummary{AccountantID: acct.ID, Count: 1}) {
		t.Errorf("PendingByAccountant() = %+v", summaries)
	}

	now := time.Now().UTC()
	processed, err := repo.Process(ctx, d.ID, document.ProcessUpdate{
		Status: document.StatusRejected, Comments: "missing signature", ProcessedBy: acct.ID, ProcessedByType: "accountant", ProcessingDate: now, RequireNew: true,
	})
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}
	if processed.Status != document.StatusRejected || processed.ProcessedBy == nil || *processed.ProcessedBy != acct.ID ||
		processed.ProcessedByType == nil || *processed.ProcessedByType != "accountant" {
		t.Errorf("Process() = %+v", processed)
	}

	_, err = repo.Process(ctx, d.ID, document.ProcessUpdate{Status: document.StatusProcessed, ProcessedBy: acct.ID, ProcessedByType: "accountant", ProcessingDate: now, RequireNew: true})
	if !errors.Is(err, document.ErrAlreadyProcessed) {
		t.Errorf("guarded Process() error = %v, want ErrAlreadyProcessed", err)
	}

	overwritten, err := repo.Process(ctx, d.ID, document.ProcessUpdate{Status: document.StatusProcessed, ProcessedBy: 1, ProcessedByType: "admin", ProcessingDate: now})
	if err != nil {
		t.Fatalf("unguarded Process() unexpected error: %v", err)
	}
	if overwritten.Status != document.StatusProcessed || overwritten.Comments != "" || *overwritten.ProcessedByType != "admin" {
		t.Errorf("unguarded Process() = %+v", overwritten)
	}

	if _, err := repo.Process(ctx, d.ID+1000, document.ProcessUpdate{Status: document.StatusProcessed, RequireNew: true}); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("Process(missing) error = %v, want ErrNotFound", err)
	}
}
