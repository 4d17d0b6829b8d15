package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"accounting_docs_service/internal/domain/company"
	"accounting_docs_service/internal/domain/document"

	"github.com/jmoiron/sqlx"
)

const documentColumns = `d.id, d.company_id, d.document_type, d.operation_type, d.document_date,
       d.vendor_client, d.amount, d.reference, d.file_name, d.file_path, d.file_size, d.mime_type,
       d.status, d.comments, d.processed_by, d.processed_by_type, d.processing_date, d.created_at`

type PostgresDocumentRepository struct {
	db *sqlx.DB
}

func NewPostgresDocumentRepository(db *sqlx.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

func (r *PostgresDocumentRepository) Create(ctx context.Context, d *document.Document) error {
	query := `INSERT INTO documents (company_id, document_type, operation_type, document_date,
                   vendor_client, amount, reference, file_name, file_path, file_size, mime_type, status)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
               RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query,
		d.CompanyID, d.DocumentType, d.OperationType, d.DocumentDate,
		d.VendorClient, d.Amount, d.Reference, d.FileName, d.FilePath, d.FileSize, d.MimeType, d.Status,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		if pqCode(err) == pgForeignKeyViolation {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("error creating document: %w", err)
	}
	return nil
}

func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id int64) (*document.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents d WHERE d.id = $1`
	d := &document.Document{}
	if err := r.db.GetContext(ctx, d, query, id); err != nil {
		if isNoRows(err) {
			return nil, document.ErrNotFound
		}
		return nil, fmt.Errorf("error getting document by ID: %w", err)
	}
	return d, nil
}

func (r *PostgresDocumentRepository) List(ctx context.Context, f document.Filter) ([]*document.Document, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	query := `SELECT ` + documentColumns + ` FROM documents d`
	if f.AccountantID != nil {
		query += ` JOIN companies c ON c.id = d.company_id`
		conds = append(conds, "c.accountant_id = "+arg(*f.AccountantID))
	}
	if f.CompanyID != nil {
		conds = append(conds, "d.company_id = "+arg(*f.CompanyID))
	}
	if f.Status != "" {
		conds = append(conds, "d.status = "+arg(f.Status))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY d.created_at DESC, d.id DESC`

	list := make([]*document.Document, 0)
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	return list, nil
}

func (r *PostgresDocumentRepository) Process(ctx context.Context, id int64, u document.ProcessUpdate) (*document.Document, error) {
	query := `UPDATE documents d
               SET status = $1, comments = $2, processed_by = $3, processed_by_type = $4, processing_date = $5
               WHERE d.id = $6`
	if u.RequireNew {
		query += ` AND d.status = 'new'`
	}
	query += ` RETURNING ` + documentColumns

	d := &document.Document{}
	err := r.db.GetContext(ctx, d, query, u.Status, u.Comments, u.ProcessedBy, u.ProcessedByType, u.ProcessingDate, id)
	if err == nil {
		return d, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("error processing document %d: %w", id, err)
	}

	// Nothing matched: tell a missing document apart from a guarded one.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, document.ErrAlreadyProcessed
}

func (r *PostgresDocumentRepository) PendingByAccountant(ctx context.Context, cutoff time.Time) ([]document.PendingSummary, error) {
	query := `SELECT c.accountant_id, COUNT(*) AS pending_count
               FROM documents d
               JOIN companies c ON c.id = d.company_id
               WHERE d.status = $1 AND d.created_at < $2 AND c.accountant_id IS NOT NULL
               GROUP BY c.accountant_id
               ORDER BY c.accountant_id`
	summaries := make([]document.PendingSummary, 0)
	if err := r.db.SelectContext(ctx, &summaries, query, document.StatusNew, cutoff); err != nil {
		return nil, fmt.Errorf("error summarising pending documents: %w", err)
	}
	return summaries, nil
}
