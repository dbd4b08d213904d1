package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositInput struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type WithdrawInput struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type TransferInput struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type TransferByEmailInput struct {
	FromAccountID string          `json:"from_account_id"`
	ToEmail       string          `json:"to_email"`
	Amount        decimal.Decimal `json:"amount"`
}

// Receipt reports the committed state after a single-account mutation.
type Receipt struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	EntryID   string          `json:"entry_id"`
}

type TransferReceipt struct {
	FromBalance decimal.Decimal `json:"from_balance"`
	ToBalance   decimal.Decimal `json:"to_balance"`
	Message     string          `json:"message"`
}

type EntryDTO struct {
	EntryID     string          `json:"entry_id"`
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}
