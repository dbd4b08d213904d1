package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByAccountID(ctx context.Context, accountID string) (*Account, error)
	// GetByAccountIDForUpdate locks the row for the remainder of the
	// enclosing transaction (SELECT ... FOR UPDATE).
	GetByAccountIDForUpdate(ctx context.Context, accountID string) (*Account, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Save(ctx context.Context, a *Account) error
	List(ctx context.Context) ([]Account, error)
}
