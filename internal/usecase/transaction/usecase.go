package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"corebank/internal/domain/account"
	"corebank/internal/domain/ledger"
	"corebank/internal/domain/uow"
	"corebank/pkg/lockmap"

	"github.com/shopspring/decimal"
)

// Usecase is the only component that mutates balances. Every mutation
// holds the per-account lock across read → validate → write → append, and
// commits the balance update together with its ledger entry in one
// transaction. Row locks inside the transaction extend the same guarantee
// across processes sharing the database.
type Usecase struct {
	accounts account.Repository
	entries  ledger.Repository
	uow      uow.UnitOfWork
	locks    *lockmap.KeyedMutex
}

func NewUsecase(accounts account.Repository, entries ledger.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{accounts: accounts, entries: entries, uow: tx, locks: lockmap.New()}
}

// validAmount rejects non-positive amounts and amounts with more than two
// fraction digits. Money is decimal scale 2 everywhere.
func validAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return account.ErrInvalidAmount
	}
	if d.Exponent() < -2 {
		return account.ErrInvalidAmount
	}
	return nil
}

func (u *Usecase) Deposit(ctx context.Context, in DepositInput) (*Receipt, error) {
	if err := validAmount(in.Amount); err != nil {
		return nil, err
	}
	u.locks.Lock(in.AccountID)
	defer u.locks.Unlock(in.AccountID)

	var rcpt *Receipt
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByAccountIDForUpdate(ctx, in.AccountID)
		if err != nil {
			return err
		}
		a.Balance = a.Balance.Add(in.Amount)
		a.TotalTransactions++
		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}
		e, err := appendEntry(ctx, r.Entries, a.AccountID, in.Amount, ledger.KindDeposit, in.Description)
		if err != nil {
			return err
		}
		rcpt = &Receipt{AccountID: a.AccountID, Balance: a.Balance, EntryID: e.EntryID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rcpt, nil
}

func (u *Usecase) Withdraw(ctx context.Context, in WithdrawInput) (*Receipt, error) {
	if err := validAmount(in.Amount); err != nil {
		return nil, err
	}
	u.locks.Lock(in.AccountID)
	defer u.locks.Unlock(in.AccountID)

	var rcpt *Receipt
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByAccountIDForUpdate(ctx, in.AccountID)
		if err != nil {
			return err
		}
		// Funds are re-checked here, under the lock, not from a balance
		// read earlier in the request.
		if a.Balance.LessThan(in.Amount) {
			return account.ErrInsufficientFunds
		}
		a.Balance = a.Balance.Sub(in.Amount)
		a.TotalTransactions++
		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}
		e, err := appendEntry(ctx, r.Entries, a.AccountID, in.Amount, ledger.KindWithdraw, in.Description)
		if err != nil {
			return err
		}
		rcpt = &Receipt{AccountID: a.AccountID, Balance: a.Balance, EntryID: e.EntryID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rcpt, nil
}

func (u *Usecase) Transfer(ctx context.Context, in TransferInput) (*TransferReceipt, error) {
	if in.FromAccountID == in.ToAccountID {
		return nil, account.ErrSelfTransfer
	}
	if err := validAmount(in.Amount); err != nil {
		return nil, err
	}
	u.locks.LockPair(in.FromAccountID, in.ToAccountID)
	defer u.locks.UnlockPair(in.FromAccountID, in.ToAccountID)

	var rcpt *TransferReceipt
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Row locks are taken in lexicographic id order so that opposing
		// transfers between the same pair cannot deadlock in the database
		// either.
		first, second := in.FromAccountID, in.ToAccountID
		if second < first {
			first, second = second, first
		}
		byID := make(map[string]*account.Account, 2)
		for _, id := range []string{first, second} {
			a, err := r.Accounts.GetByAccountIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			byID[id] = a
		}
		from, to := byID[in.FromAccountID], byID[in.ToAccountID]

		if from.Balance.LessThan(in.Amount) {
			return account.ErrInsufficientFunds
		}
		from.Balance = from.Balance.Sub(in.Amount)
		to.Balance = to.Balance.Add(in.Amount)
		from.TotalTransactions++
		to.TotalTransactions++
		if err := r.Accounts.Save(ctx, from); err != nil {
			return err
		}
		if err := r.Accounts.Save(ctx, to); err != nil {
			return err
		}

		debit := fmt.Sprintf("Transfer to %s (%s)", to.OwnerName, to.Email)
		credit := fmt.Sprintf("Transfer from %s (%s)", from.OwnerName, from.Email)
		if _, err := appendEntry(ctx, r.Entries, from.AccountID, in.Amount, ledger.KindTransfer, debit); err != nil {
			return err
		}
		if _, err := appendEntry(ctx, r.Entries, to.AccountID, in.Amount, ledger.KindTransfer, credit); err != nil {
			return err
		}
		rcpt = &TransferReceipt{FromBalance: from.Balance, ToBalance: to.Balance, Message: "Transfer successful"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rcpt, nil
}

// TransferByEmail resolves the recipient first, then runs the same atomic
// transfer path.
func (u *Usecase) TransferByEmail(ctx context.Context, in TransferByEmailInput) (*TransferReceipt, error) {
	to, err := u.accounts.GetByEmail(ctx, strings.TrimSpace(in.ToEmail))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, account.ErrRecipientNotFound
		}
		return nil, err
	}
	return u.Transfer(ctx, TransferInput{
		FromAccountID: in.FromAccountID,
		ToAccountID:   to.AccountID,
		Amount:        in.Amount,
	})
}

// History returns the account's ledger entries newest first.
func (u *Usecase) History(ctx context.Context, accountID string) ([]EntryDTO, error) {
	if _, err := u.accounts.GetByAccountID(ctx, accountID); err != nil {
		return nil, err
	}
	list, err := u.entries.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]EntryDTO, 0, len(list))
	for _, e := range list {
		out = append(out, EntryDTO{
			EntryID:     e.EntryID,
			AccountID:   e.AccountID,
			Amount:      e.Amount,
			Kind:        string(e.Kind),
			Description: e.Description,
			Timestamp:   e.Timestamp,
		})
	}
	return out, nil
}

// Disburse credits amount to the owner's account and appends one DEPOSIT
// entry, using repositories already bound to an open transaction. The loan
// engine composes with the mutator through this method so a loan decision
// and its credit commit as one unit. Serialization against concurrent
// mutations of the same account comes from the row lock taken here inside
// the caller's transaction; the keyed lock is deliberately not touched, as
// taking it after entering a transaction would invert the lock order used
// by Deposit/Withdraw/Transfer.
func (u *Usecase) Disburse(ctx context.Context, r uow.Repos, ownerID string, amount decimal.Decimal, desc string) (*Receipt, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	a, err := r.Accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	a, err = r.Accounts.GetByAccountIDForUpdate(ctx, a.AccountID)
	if err != nil {
		return nil, err
	}
	a.Balance = a.Balance.Add(amount)
	a.TotalTransactions++
	if err := r.Accounts.Save(ctx, a); err != nil {
		return nil, err
	}
	e, err := appendEntry(ctx, r.Entries, a.AccountID, amount, ledger.KindDeposit, desc)
	if err != nil {
		return nil, err
	}
	return &Receipt{AccountID: a.AccountID, Balance: a.Balance, EntryID: e.EntryID}, nil
}

func appendEntry(ctx context.Context, repo ledger.Repository, accountID string, amount decimal.Decimal, kind ledger.Kind, desc string) (*ledger.Entry, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		desc = ledger.DefaultDescription(kind)
	}
	e := &ledger.Entry{AccountID: accountID, Amount: amount, Kind: kind, Description: desc}
	if err := repo.Append(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
