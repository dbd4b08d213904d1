// Package memstore is an in-memory implementation of the repositories and
// the unit of work, used by usecase tests that need real state: concurrent
// withdrawals, transfer atomicity, rollback on failure. Transactions are
// serialized by one mutex and roll back by restoring a snapshot.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"corebank/internal/domain/account"
	"corebank/internal/domain/ledger"
	"corebank/internal/domain/loan"
	"corebank/internal/domain/uow"
	"corebank/pkg/id"
)

type Store struct {
	txMu sync.Mutex // serializes transactions
	mu   sync.Mutex // guards the maps and slices below

	accounts  map[string]account.Account // by AccountID
	entries   []ledger.Entry
	loans     map[string]loan.Loan // by LoanID
	nextAcct  uint64
	nextEntry uint64
	nextLoan  uint64
}

func New() *Store {
	return &Store{
		accounts: make(map[string]account.Account),
		loans:    make(map[string]loan.Loan),
	}
}

func (s *Store) Repos() uow.Repos {
	return uow.Repos{
		Accounts: &accountRepo{s},
		Entries:  &ledgerRepo{s},
		Loans:    &loanRepo{s},
	}
}

type snapshot struct {
	accounts map[string]account.Account
	entries  []ledger.Entry
	loans    map[string]loan.Loan
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		accounts: make(map[string]account.Account, len(s.accounts)),
		entries:  make([]ledger.Entry, len(s.entries)),
		loans:    make(map[string]loan.Loan, len(s.loans)),
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	copy(snap.entries, s.entries)
	for k, v := range s.loans {
		snap.loans[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = snap.accounts
	s.entries = snap.entries
	s.loans = snap.loans
}

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	if err := fn(s.Repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	r := s.Repos()
	l, err := r.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return err
	}
	if err := fn(r, l); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

var _ uow.UnitOfWork = (*Store)(nil)

// Seed helpers and assertion accessors; all return copies.

func (s *Store) AddAccount(a account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		s.nextAcct++
		a.ID = s.nextAcct
	}
	s.accounts[a.AccountID] = a
}

func (s *Store) AddLoan(l loan.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		s.nextLoan++
		l.ID = s.nextLoan
	}
	s.loans[l.LoanID] = l
}

func (s *Store) Account(accountID string) (account.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	return a, ok
}

func (s *Store) Loan(loanID string) (loan.Loan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loans[loanID]
	return l, ok
}

func (s *Store) EntryCount(accountID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.AccountID == accountID {
			n++
		}
	}
	return n
}

// ---- account.Repository ----

type accountRepo struct{ s *Store }

func (r *accountRepo) Create(_ context.Context, a *account.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.accounts {
		if cur.Email == a.Email {
			return account.ErrEmailTaken
		}
	}
	r.s.nextAcct++
	a.ID = r.s.nextAcct
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.s.accounts[a.AccountID] = *a
	return nil
}

func (r *accountRepo) Save(_ context.Context, a *account.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[a.AccountID]; !ok {
		return account.ErrNotFound
	}
	r.s.accounts[a.AccountID] = *a
	return nil
}

func (r *accountRepo) GetByAccountID(_ context.Context, accountID string) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[accountID]
	if !ok {
		return nil, account.ErrNotFound
	}
	cp := a
	return &cp, nil
}

func (r *accountRepo) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*account.Account, error) {
	// Row locking is meaningless in memory; serialization comes from the
	// usecase's keyed locks plus the store's transaction mutex.
	return r.GetByAccountID(ctx, accountID)
}

func (r *accountRepo) GetByOwnerID(_ context.Context, ownerID string) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.OwnerID == ownerID {
			cp := a
			return &cp, nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *accountRepo) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.Email == email {
			cp := a
			return &cp, nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *accountRepo) List(_ context.Context) ([]account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]account.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- ledger.Repository ----

type ledgerRepo struct{ s *Store }

func (r *ledgerRepo) Append(_ context.Context, e *ledger.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextEntry++
	e.ID = r.s.nextEntry
	if e.EntryID == "" {
		e.EntryID = id.NewID32()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	r.s.entries = append(r.s.entries, *e)
	return nil
}

func (r *ledgerRepo) ListForAccount(_ context.Context, accountID string) ([]ledger.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []ledger.Entry
	for _, e := range r.s.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *ledgerRepo) CountForAccount(_ context.Context, accountID string) (int64, error) {
	return int64(r.s.EntryCount(accountID)), nil
}

// ---- loan.Repository ----

type loanRepo struct{ s *Store }

func (r *loanRepo) Create(_ context.Context, l *loan.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextLoan++
	l.ID = r.s.nextLoan
	r.s.loans[l.LoanID] = *l
	return nil
}

func (r *loanRepo) Save(_ context.Context, l *loan.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.loans[l.LoanID]; !ok {
		return loan.ErrNotFound
	}
	r.s.loans[l.LoanID] = *l
	return nil
}

func (r *loanRepo) GetByLoanID(_ context.Context, loanID string) (*loan.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.loans[loanID]
	if !ok {
		return nil, loan.ErrNotFound
	}
	cp := l
	return &cp, nil
}

func (r *loanRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loan.Loan, error) {
	return r.GetByLoanID(ctx, loanID)
}

func (r *loanRepo) ListByStatus(_ context.Context, s loan.Status) ([]loan.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []loan.Loan
	for _, l := range r.s.loans {
		if l.Status == s {
			out = append(out, l)
		}
	}
	sortLoans(out)
	return out, nil
}

func (r *loanRepo) ListForOwner(_ context.Context, ownerID string) ([]loan.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []loan.Loan
	for _, l := range r.s.loans {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	sortLoans(out)
	return out, nil
}

func (r *loanRepo) ListAll(_ context.Context) ([]loan.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]loan.Loan, 0, len(r.s.loans))
	for _, l := range r.s.loans {
		out = append(out, l)
	}
	sortLoans(out)
	return out, nil
}

func sortLoans(list []loan.Loan) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].ApplicationDate.Equal(list[j].ApplicationDate) {
			return list[i].ApplicationDate.After(list[j].ApplicationDate)
		}
		return list[i].ID > list[j].ID
	})
}
