package mysql

import (
	"context"
	"errors"
	"fmt"

	domain "corebank/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *domain.Loan) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create loan: %w", err)
	}
	return nil
}

func (r *LoanRepository) Save(ctx context.Context, l *domain.Loan) error {
	if err := r.db.WithContext(ctx).Save(l).Error; err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	return nil
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.first(ctx, r.db, loanID)
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), loanID)
}

func (r *LoanRepository) ListByStatus(ctx context.Context, s domain.Status) ([]domain.Loan, error) {
	var out []domain.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", s).
		Order("application_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list loans by status: %w", err)
	}
	return out, nil
}

func (r *LoanRepository) ListForOwner(ctx context.Context, ownerID string) ([]domain.Loan, error) {
	var out []domain.Loan
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("application_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list loans for owner: %w", err)
	}
	return out, nil
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]domain.Loan, error) {
	var out []domain.Loan
	err := r.db.WithContext(ctx).
		Order("application_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return out, nil
}

func (r *LoanRepository) first(ctx context.Context, tx *gorm.DB, loanID string) (*domain.Loan, error) {
	var out domain.Loan
	err := tx.WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &out, nil
}

var _ domain.Repository = (*LoanRepository)(nil)
