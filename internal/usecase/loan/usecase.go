package loan

import (
	"context"
	"errors"
	"time"

	"corebank/internal/domain/account"
	domain "corebank/internal/domain/loan"
	"corebank/internal/domain/uow"
	"corebank/internal/usecase/transaction"
	"corebank/pkg/id"

	"github.com/shopspring/decimal"
)

// Disburser is the one seam between the loan engine and the balance
// mutator: approving a loan credits the principal through it, inside the
// same transaction as the status change.
type Disburser interface {
	Disburse(ctx context.Context, r uow.Repos, ownerID string, amount decimal.Decimal, desc string) (*transaction.Receipt, error)
}

type Usecase struct {
	loans     domain.Repository
	accounts  account.Repository
	uow       uow.UnitOfWork
	disburser Disburser
	rates     domain.RateCatalog
}

func NewUsecase(loans domain.Repository, accounts account.Repository, tx uow.UnitOfWork, d Disburser, rates domain.RateCatalog) *Usecase {
	if rates == nil {
		rates = domain.DefaultRates()
	}
	return &Usecase{loans: loans, accounts: accounts, uow: tx, disburser: d, rates: rates}
}

func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	typ, ok := domain.ParseType(in.Type)
	if !ok {
		return nil, domain.ErrUnknownType
	}
	if !in.Principal.IsPositive() || in.Principal.Exponent() < -2 || in.TenureMonths <= 0 {
		return nil, account.ErrInvalidAmount
	}
	if _, err := u.accounts.GetByOwnerID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, err
	}

	rate, ok := u.rates[typ]
	if !ok {
		rate = domain.FallbackRate
	}
	l := &domain.Loan{
		LoanID:          id.NewID32(),
		OwnerID:         in.OwnerID,
		Type:            typ,
		Principal:       in.Principal,
		TenureMonths:    in.TenureMonths,
		InterestRate:    rate,
		Purpose:         in.Purpose,
		Status:          domain.StatusPending,
		ApplicationDate: time.Now().UTC(),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Approve moves a PENDING loan to APPROVED and credits the principal to
// the applicant's account. Status change, decision metadata, balance
// update and ledger entry commit together or not at all.
func (u *Usecase) Approve(ctx context.Context, in DecisionInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		now := time.Now().UTC()
		l.Normalize(now, u.rates)
		if l.Status != domain.StatusPending {
			return domain.ErrInvalidTransition
		}
		l.Status = domain.StatusApproved
		l.DecisionDate = &now
		l.DecidedBy = in.DecidedBy
		l.AdminComments = in.Comments
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		desc := "Loan disbursement: " + string(l.Type)
		if _, err := u.disburser.Disburse(ctx, r, l.OwnerID, l.Principal, desc); err != nil {
			if errors.Is(err, account.ErrNotFound) {
				return domain.ErrOwnerNotFound
			}
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject moves a PENDING loan to REJECTED. No balance effect.
func (u *Usecase) Reject(ctx context.Context, in DecisionInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		now := time.Now().UTC()
		l.Normalize(now, u.rates)
		if l.Status != domain.StatusPending {
			return domain.ErrInvalidTransition
		}
		l.Status = domain.StatusRejected
		l.DecisionDate = &now
		l.DecidedBy = in.DecidedBy
		l.AdminComments = in.Comments
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListPending(ctx context.Context) ([]LoanDTO, error) {
	list, err := u.loans.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (u *Usecase) ListAll(ctx context.Context) ([]LoanDTO, error) {
	list, err := u.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (u *Usecase) ListForOwner(ctx context.Context, ownerID string) ([]LoanDTO, error) {
	if _, err := u.accounts.GetByOwnerID(ctx, ownerID); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, err
	}
	list, err := u.loans.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		OwnerID:         l.OwnerID,
		Type:            string(l.Type),
		Principal:       l.Principal,
		TenureMonths:    l.TenureMonths,
		InterestRate:    l.InterestRate,
		Purpose:         l.Purpose,
		Status:          string(l.Status),
		AdminComments:   l.AdminComments,
		ApplicationDate: l.ApplicationDate,
		DecisionDate:    l.DecisionDate,
		DecidedBy:       l.DecidedBy,
	}
}

func toDTOs(list []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out
}
