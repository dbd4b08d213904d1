package uow

import (
	"context"

	"corebank/internal/domain/account"
	"corebank/internal/domain/ledger"
	"corebank/internal/domain/loan"
)

type Repos struct {
	Accounts account.Repository
	Entries  ledger.Repository
	Loans    loan.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn with repositories bound to one transaction; all
	// writes inside fn commit together or not at all.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
