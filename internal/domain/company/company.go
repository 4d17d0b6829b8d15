// internal/domain/company/company.go
package company

import (
	"errors"
	"time"
)

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrAccountantNotFound = errors.New("accountant not found")
	ErrDuplicateEmail     = errors.New("email is already registered")
)

// Company is a client business whose documents are reviewed by an accountant.
type Company struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	TaxID        string    `db:"tax_id" json:"tax_id"`
	Email        string    `db:"email" json:"email"`
	AccountantID *int64    `db:"accountant_id" json:"accountant_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Accountant reviews the documents of the companies assigned to them.
type Accountant struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
