package mysql

import (
	"context"
	"errors"
	"fmt"

	domain "corebank/internal/domain/account"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Save(ctx context.Context, a *domain.Account) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.first(ctx, r.db, "account_id = ?", accountID)
}

func (r *AccountRepository) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	tx := r.db.Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(ctx, tx, "account_id = ?", accountID)
}

func (r *AccountRepository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Account, error) {
	return r.first(ctx, r.db, "owner_id = ?", ownerID)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.first(ctx, r.db, "email = ?", email)
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

func (r *AccountRepository) first(ctx context.Context, tx *gorm.DB, query string, arg any) (*domain.Account, error) {
	var out domain.Account
	err := tx.WithContext(ctx).Where(query, arg).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &out, nil
}

var _ domain.Repository = (*AccountRepository)(nil)
