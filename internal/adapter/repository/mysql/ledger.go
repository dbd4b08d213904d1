package mysql

import (
	"context"
	"fmt"
	"time"

	domain "corebank/internal/domain/ledger"
	"corebank/pkg/id"

	"gorm.io/gorm"
)

type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

// Append is insert-only; there is no update or delete on this table.
func (r *LedgerRepository) Append(ctx context.Context, e *domain.Entry) error {
	if e.EntryID == "" {
		e.EntryID = id.NewID32()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepository) ListForAccount(ctx context.Context, accountID string) ([]domain.Entry, error) {
	var out []domain.Entry
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("timestamp DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return out, nil
}

func (r *LedgerRepository) CountForAccount(ctx context.Context, accountID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Entry{}).
		Where("account_id = ?", accountID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count ledger entries: %w", err)
	}
	return n, nil
}

var _ domain.Repository = (*LedgerRepository)(nil)
