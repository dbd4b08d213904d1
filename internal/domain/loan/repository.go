package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the enclosing transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	// Listing queries order by application_date DESC, id DESC.
	ListByStatus(ctx context.Context, s Status) ([]Loan, error)
	ListForOwner(ctx context.Context, ownerID string) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
}
