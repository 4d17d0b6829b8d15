package database

import (
	"context"
	"errors"
	"fmt"

	"accounting_docs_service/internal/domain/company"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pgUniqueViolation and pgForeignKeyViolation are PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PostgresCompanyRepository struct {
	db *sqlx.DB
}

func NewPostgresCompanyRepository(db *sqlx.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func (r *PostgresCompanyRepository) CreateCompany(ctx context.Context, c *company.Company) error {
	query := `INSERT INTO companies (name, tax_id, email, accountant_id)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query, c.Name, c.TaxID, c.Email, c.AccountantID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch pqCode(err) {
		case pgUniqueViolation:
			return company.ErrDuplicateEmail
		case pgForeignKeyViolation:
			return company.ErrAccountantNotFound
		}
		return fmt.Errorf("error creating company: %w", err)
	}
	return nil
}

func (r *PostgresCompanyRepository) GetCompany(ctx context.Context, id int64) (*company.Company, error) {
	query := `SELECT id, name, tax_id, email, accountant_id, created_at FROM companies WHERE id = $1`
	c := &company.Company{}
	if err := r.db.GetContext(ctx, c, query, id); err != nil {
		if isNoRows(err) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error getting company by ID: %w", err)
	}
	return c, nil
}

func (r *PostgresCompanyRepository) ListCompanies(ctx context.Context) ([]*company.Company, error) {
	query := `SELECT id, name, tax_id, email, accountant_id, created_at FROM companies ORDER BY name, id`
	list := make([]*company.Company, 0)
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}
	return list, nil
}

func (r *PostgresCompanyRepository) AssignAccountant(ctx context.Context, companyID, accountantID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE companies SET accountant_id = $1 WHERE id = $2`, accountantID, companyID)
	if err != nil {
		if pqCode(err) == pgForeignKeyViolation {
			return company.ErrAccountantNotFound
		}
		return fmt.Errorf("error assigning accountant to company: %w", err)
	}
	return expectAffected(res, company.ErrCompanyNotFound)
}

func (r *PostgresCompanyRepository) CreateAccountant(ctx context.Context, a *company.Accountant) error {
	query := `INSERT INTO accountants (name, email) VALUES ($1, $2) RETURNING id, created_at`
	if err := r.db.QueryRowxContext(ctx, query, a.Name, a.Email).Scan(&a.ID, &a.CreatedAt); err != nil {
		if pqCode(err) == pgUniqueViolation {
			return company.ErrDuplicateEmail
		}
		return fmt.Errorf("error creating accountant: %w", err)
	}
	return nil
}

func (r *PostgresCompanyRepository) GetAccountant(ctx context.Context, id int64) (*company.Accountant, error) {
	a := &company.Accountant{}
	if err := r.db.GetContext(ctx, a, `SELECT id, name, email, created_at FROM accountants WHERE id = $1`, id); err != nil {
		if isNoRows(err) {
			return nil, company.ErrAccountantNotFound
		}
		return nil, fmt.Errorf("error getting accountant by ID: %w", err)
	}
	return a, nil
}

func (r *PostgresCompanyRepository) ListAccountants(ctx context.Context) ([]*company.Accountant, error) {
	list := make([]*company.Accountant, 0)
	if err := r.db.SelectContext(ctx, &list, `SELECT id, name, email, created_at FROM accountants ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("error listing accountants: %w", err)
	}
	return list, nil
}
