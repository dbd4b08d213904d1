package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	"corebank/internal/domain/account"
	domain "corebank/internal/domain/loan"
	"corebank/internal/testutil/loanmock"
	"corebank/internal/testutil/memstore"
	"corebank/internal/usecase/transaction"
	"corebank/pkg/id"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uc      *Usecase
	mem     *memstore.Store
	ownerID string
	acctID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := memstore.New()
	acctID, ownerID := id.NewID32(), id.NewID32()
	mem.AddAccount(account.Account{
		AccountID: acctID,
		OwnerID:   ownerID,
		OwnerName: "Alice",
		Email:     "alice@x.dev",
		Role:      account.RoleCustomer,
		Balance:   dec("100.00"),
	})
	r := mem.Repos()
	txUC := transaction.NewUsecase(r.Accounts, r.Entries, mem)
	uc := NewUsecase(r.Loans, r.Accounts, mem, txUC, nil)
	return &fixture{uc: uc, mem: mem, ownerID: ownerID, acctID: acctID}
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dto, err := f.uc.Apply(ctx, ApplyInput{
		OwnerID:      f.ownerID,
		Type:         "PERSONAL",
		Principal:    dec("5000.00"),
		TenureMonths: 12,
		Purpose:      "renovation",
	})
	if err != nil {
		t.Fatalf("Apply err: %v", err)
	}
	if dto.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, want PENDING", dto.Status)
	}
	if !dto.InterestRate.Equal(dec("15.0")) {
		t.Fatalf("rate = %s, want 15.0", dto.InterestRate)
	}
	if dto.LoanID == "" || dto.ApplicationDate.IsZero() {
		t.Fatal("loan id or application date not set")
	}

	stored, ok := f.mem.Loan(dto.LoanID)
	if !ok {
		t.Fatal("loan not persisted")
	}
	if stored.Type != domain.TypePersonal {
		t.Fatalf("type = %s", stored.Type)
	}
}

func TestApply_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   ApplyInput
		want error
	}{
		{
			name: "unknown type",
			in:   ApplyInput{OwnerID: f.ownerID, Type: "CRYPTO", Principal: dec("100"), TenureMonths: 6},
			want: domain.ErrUnknownType,
		},
		{
			name: "zero principal",
			in:   ApplyInput{OwnerID: f.ownerID, Type: "GOLD", Principal: dec("0"), TenureMonths: 6},
			want: account.ErrInvalidAmount,
		},
		{
			name: "negative principal",
			in:   ApplyInput{OwnerID: f.ownerID, Type: "GOLD", Principal: dec("-10"), TenureMonths: 6},
			want: account.ErrInvalidAmount,
		},
		{
			name: "sub-cent principal",
			in:   ApplyInput{OwnerID: f.ownerID, Type: "GOLD", Principal: dec("10.999"), TenureMonths: 6},
			want: account.ErrInvalidAmount,
		},
		{
			name: "zero tenure",
			in:   ApplyInput{OwnerID: f.ownerID, Type: "GOLD", Principal: dec("100"), TenureMonths: 0},
			want: account.ErrInvalidAmount,
		},
		{
			name: "unknown owner",
			in:   ApplyInput{OwnerID: id.NewID32(), Type: "GOLD", Principal: dec("100"), TenureMonths: 6},
			want: domain.ErrOwnerNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Apply(ctx, tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestApply_RateCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		typ  string
		rate string
	}{
		{"EDUCATIONAL", "8.5"},
		{"FARMING", "6.0"},
		{"GOLD", "12.0"},
		{"PERSONAL", "15.0"},
	}
	for _, tc := range cases {
		dto, err := f.uc.Apply(ctx, ApplyInput{
			OwnerID: f.ownerID, Type: tc.typ, Principal: dec("1000.00"), TenureMonths: 12,
		})
		if err != nil {
			t.Fatalf("%s: %v", tc.typ, err)
		}
		if !dto.InterestRate.Equal(dec(tc.rate)) {
			t.Fatalf("%s: rate = %s, want %s", tc.typ, dto.InterestRate, tc.rate)
		}
	}
}

func TestApprove_CreditsPrincipal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adminID := id.NewID32()

	applied, err := f.uc.Apply(ctx, ApplyInput{
		OwnerID: f.ownerID, Type: "FARMING", Principal: dec("5000.00"), TenureMonths: 24,
	})
	if err != nil {
		t.Fatal(err)
	}

	dto, err := f.uc.Approve(ctx, DecisionInput{LoanID: applied.LoanID, DecidedBy: adminID, Comments: "ok"})
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}
	if dto.Status != string(domain.StatusApproved) {
		t.Fatalf("status = %s, want APPROVED", dto.Status)
	}
	if dto.DecisionDate == nil || dto.DecidedBy != adminID || dto.AdminComments != "ok" {
		t.Fatal("decision metadata not recorded")
	}

	a, _ := f.mem.Account(f.acctID)
	if !a.Balance.Equal(dec("5100.00")) {
		t.Fatalf("balance = %s, want 5100.00", a.Balance)
	}
	if a.TotalTransactions != 1 || f.mem.EntryCount(f.acctID) != 1 {
		t.Fatalf("counter=%d entries=%d, want 1/1", a.TotalTransactions, f.mem.EntryCount(f.acctID))
	}

	// Double approval must fail and must not credit again.
	_, err = f.uc.Approve(ctx, DecisionInput{LoanID: applied.LoanID, DecidedBy: adminID})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("second approve err = %v, want ErrInvalidTransition", err)
	}
	a, _ = f.mem.Account(f.acctID)
	if !a.Balance.Equal(dec("5100.00")) {
		t.Fatalf("balance after double approve = %s", a.Balance)
	}
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	applied, err := f.uc.Apply(ctx, ApplyInput{
		OwnerID: f.ownerID, Type: "GOLD", Principal: dec("2000.00"), TenureMonths: 6,
	})
	if err != nil {
		t.Fatal(err)
	}

	dto, err := f.uc.Reject(ctx, DecisionInput{LoanID: applied.LoanID, DecidedBy: id.NewID32(), Comments: "too risky"})
	if err != nil {
		t.Fatalf("Reject err: %v", err)
	}
	if dto.Status != string(domain.StatusRejected) {
		t.Fatalf("status = %s, want REJECTED", dto.Status)
	}

	a, _ := f.mem.Account(f.acctID)
	if !a.Balance.Equal(dec("100.00")) {
		t.Fatalf("balance = %s, rejection must not credit", a.Balance)
	}

	_, err = f.uc.Approve(ctx, DecisionInput{LoanID: applied.LoanID, DecidedBy: id.NewID32()})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("approve after reject err = %v, want ErrInvalidTransition", err)
	}
}

func TestDecide_LoanNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Approve(context.Background(), DecisionInput{LoanID: id.NewID32(), DecidedBy: id.NewID32()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestApprove_MissingOwnerRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loanID := id.NewID32()
	f.mem.AddLoan(domain.Loan{
		LoanID:          loanID,
		OwnerID:         id.NewID32(), // no such account
		Type:            domain.TypePersonal,
		Principal:       dec("1000.00"),
		TenureMonths:    12,
		InterestRate:    dec("15.0"),
		Status:          domain.StatusPending,
		ApplicationDate: time.Now().UTC(),
	})

	_, err := f.uc.Approve(ctx, DecisionInput{LoanID: loanID, DecidedBy: id.NewID32()})
	if !errors.Is(err, domain.ErrOwnerNotFound) {
		t.Fatalf("err = %v, want ErrOwnerNotFound", err)
	}

	l, _ := f.mem.Loan(loanID)
	if l.Status != domain.StatusPending {
		t.Fatalf("status = %s, failed approval must roll back to PENDING", l.Status)
	}
}

func TestApprove_NormalizesLegacyRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Record with blank status, zero dates and zero rate, as an old import
	// might leave behind.
	loanID := id.NewID32()
	f.mem.AddLoan(domain.Loan{
		LoanID:       loanID,
		OwnerID:      f.ownerID,
		Type:         domain.TypeEducational,
		Principal:    dec("300.00"),
		TenureMonths: 6,
	})

	dto, err := f.uc.Approve(ctx, DecisionInput{LoanID: loanID, DecidedBy: id.NewID32()})
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}
	if dto.Status != string(domain.StatusApproved) {
		t.Fatalf("status = %s", dto.Status)
	}
	if !dto.InterestRate.Equal(dec("8.5")) {
		t.Fatalf("rate = %s, want backfilled 8.5", dto.InterestRate)
	}
	if dto.ApplicationDate.IsZero() {
		t.Fatal("application date not backfilled")
	}
}

func TestLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, _ := f.uc.Apply(ctx, ApplyInput{OwnerID: f.ownerID, Type: "GOLD", Principal: dec("100.00"), TenureMonths: 6})
	second, _ := f.uc.Apply(ctx, ApplyInput{OwnerID: f.ownerID, Type: "PERSONAL", Principal: dec("200.00"), TenureMonths: 6})
	if _, err := f.uc.Reject(ctx, DecisionInput{LoanID: first.LoanID, DecidedBy: id.NewID32()}); err != nil {
		t.Fatal(err)
	}

	pending, err := f.uc.ListPending(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].LoanID != second.LoanID {
		t.Fatalf("pending = %+v, want only the second loan", pending)
	}

	all, err := f.uc.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d, want 2", len(all))
	}

	mine, err := f.uc.ListForOwner(ctx, f.ownerID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("mine = %d, want 2", len(mine))
	}

	_, err = f.uc.ListForOwner(ctx, id.NewID32())
	if !errors.Is(err, domain.ErrOwnerNotFound) {
		t.Fatalf("err = %v, want ErrOwnerNotFound", err)
	}
}

func TestGet_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	repo := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			return nil, boom
		},
	}
	uc := NewUsecase(repo, nil, nil, nil, nil)
	_, err := uc.Get(context.Background(), id.NewID32())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}
