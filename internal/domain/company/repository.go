package company

import (
	"context"
)

// Repository defines the operations for persisting companies and accountants.
type Repository interface {
	CreateCompany(ctx context.Context, c *Company) error
	GetCompany(ctx context.Context, id int64) (*Company, error)
	ListCompanies(ctx context.Context) ([]*Company, error)
	AssignAccountant(ctx context.Context, companyID, accountantID int64) error

	CreateAccountant(ctx context.Context, a *Accountant) error
	GetAccountant(ctx context.Context, id int64) (*Accountant, error)
	ListAccountants(ctx context.Context) ([]*Accountant, error)
}
