package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDeposit  Kind = "DEPOSIT"
	KindWithdraw Kind = "WITHDRAW"
	KindTransfer Kind = "TRANSFER"
)

// DefaultDescription fills the free-text description when the caller left
// it blank. Transfer entries always carry counterparty text built by the
// usecase, so the plain fallback here is rarely seen for them.
func DefaultDescription(k Kind) string {
	switch k {
	case KindDeposit:
		return "Money deposit"
	case KindWithdraw:
		return "Money withdrawal"
	default:
		return "Money transfer"
	}
}

// Entry is one immutable ledger record. Amount is always positive; the
// direction is carried by Kind. Entries are append-only: nothing updates or
// deletes them after Append.
type Entry struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	EntryID     string          `gorm:"size:32;uniqueIndex:ux_entries_entry_id" json:"entry_id"`
	AccountID   string          `gorm:"size:32;index:idx_entries_account" json:"account_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Kind        Kind            `gorm:"size:16" json:"kind"`
	Description string          `gorm:"type:text" json:"description"`
	Timestamp   time.Time       `gorm:"index:idx_entries_account" json:"timestamp"`
}

func (Entry) TableName() string { return "ledger_entries" }
