package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer to self")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrEmailTaken        = errors.New("email already registered")
)

// Role is the closed set of caller roles. Authorization compares against
// these constants, never against free-form strings.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

// Account is the single balance-bearing record per owner. Balance is
// mutated only through the transaction usecase; the invariant balance >= 0
// holds at every committed state.
type Account struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"-"`
	AccountID         string          `gorm:"size:32;uniqueIndex:ux_accounts_account_id" json:"account_id"`
	OwnerID           string          `gorm:"size:32;uniqueIndex:ux_accounts_owner_id" json:"owner_id"`
	OwnerName         string          `gorm:"size:255" json:"owner_name"`
	Email             string          `gorm:"size:255;uniqueIndex:ux_accounts_email" json:"email"`
	PasswordHash      string          `gorm:"size:128" json:"-"`
	Role              Role            `gorm:"size:16;default:'CUSTOMER'" json:"role"`
	Balance           decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	TotalTransactions int64           `gorm:"default:0" json:"total_transactions"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	LastLogin         *time.Time      `json:"last_login,omitempty"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
