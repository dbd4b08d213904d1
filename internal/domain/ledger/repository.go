package ledger

import "context"

type Repository interface {
	// Append stores a new entry, assigning EntryID and Timestamp when the
	// caller left them zero. Stored entries are never modified again.
	Append(ctx context.Context, e *Entry) error
	// ListForAccount returns the account's entries newest first.
	ListForAccount(ctx context.Context, accountID string) ([]Entry, error)
	CountForAccount(ctx context.Context, accountID string) (int64, error)
}
