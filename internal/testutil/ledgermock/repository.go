package ledgermock

import (
	"context"

	domain "corebank/internal/domain/ledger"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	AppendFn          func(ctx context.Context, e *domain.Entry) error
	ListForAccountFn  func(ctx context.Context, accountID string) ([]domain.Entry, error)
	CountForAccountFn func(ctx context.Context, accountID string) (int64, error)
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListForAccount(ctx context.Context, accountID string) ([]domain.Entry, error) {
	if m.ListForAccountFn != nil {
		return m.ListForAccountFn(ctx, accountID)
	}
	return nil, context.Canceled
}

func (m *Repo) CountForAccount(ctx context.Context, accountID string) (int64, error) {
	if m.CountForAccountFn != nil {
		return m.CountForAccountFn(ctx, accountID)
	}
	return 0, context.Canceled
}

var _ domain.Repository = (*Repo)(nil)
