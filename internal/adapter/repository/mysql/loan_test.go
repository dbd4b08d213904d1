package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "corebank/internal/domain/loan"
	"corebank/pkg/id"

	"github.com/shopspring/decimal"
)

func makeLoan(ownerID string, applied time.Time) *domain.Loan {
	return &domain.Loan{
		LoanID:          id.NewID32(),
		OwnerID:         ownerID,
		Type:            domain.TypePersonal,
		Principal:       decimal.RequireFromString("5000.00"),
		TenureMonths:    12,
		InterestRate:    decimal.RequireFromString("15.0"),
		Status:          domain.StatusPending,
		ApplicationDate: applied,
	}
}

func TestLoanCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), time.Now().UTC())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatal("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.OwnerID != l.OwnerID || got.Status != domain.StatusPending {
		t.Errorf("unexpected loan: %+v", got)
	}

	if _, err := repo.GetByLoanID(ctx, id.NewID32()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing loan err = %v, want ErrNotFound", err)
	}
}

func TestLoanSaveDecision(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), time.Now().UTC())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC()
	l.Status = domain.StatusApproved
	l.DecisionDate = &now
	l.DecidedBy = id.NewID32()
	l.AdminComments = "approved"
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != domain.StatusApproved || got.DecisionDate == nil || got.AdminComments != "approved" {
		t.Errorf("decision not persisted: %+v", got)
	}
}

func TestLoanLists(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	owner := id.NewID32()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	older := makeLoan(owner, base)
	newer := makeLoan(owner, base.Add(24*time.Hour))
	rejected := makeLoan(id.NewID32(), base.Add(48*time.Hour))
	rejected.Status = domain.StatusRejected
	for _, l := range []*domain.Loan{older, newer, rejected} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	pending, err := repo.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(pending) != 2 || pending[0].LoanID != newer.LoanID {
		t.Errorf("pending = %d loans, first %s; want 2 with newest first", len(pending), pending[0].LoanID)
	}

	mine, err := repo.ListForOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListForOwner: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("owner loans = %d, want 2", len(mine))
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 || all[0].LoanID != rejected.LoanID {
		t.Errorf("all = %d loans, want 3 newest first", len(all))
	}
}
