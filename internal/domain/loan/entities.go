package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrOwnerNotFound     = errors.New("loan owner not found")
	ErrInvalidTransition = errors.New("loan is not in pending status")
	ErrUnknownType       = errors.New("unknown loan type")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// Reserved statuses carried in the schema; no transition produces them.
	StatusDisbursed Status = "DISBURSED"
	StatusCompleted Status = "COMPLETED"
)

type Type string

const (
	TypeEducational Type = "EDUCATIONAL"
	TypeFarming     Type = "FARMING"
	TypeGold        Type = "GOLD"
	TypePersonal    Type = "PERSONAL"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeEducational, TypeFarming, TypeGold, TypePersonal:
		return Type(s), true
	}
	return "", false
}

// RateCatalog maps a loan type to its default annual interest rate in
// percent. The catalog is read-only configuration, injected into the
// usecase; DefaultRates matches the product sheet.
type RateCatalog map[Type]decimal.Decimal

func DefaultRates() RateCatalog {
	return RateCatalog{
		TypeEducational: decimal.RequireFromString("8.5"),
		TypeFarming:     decimal.RequireFromString("6.0"),
		TypeGold:        decimal.RequireFromString("12.0"),
		TypePersonal:    decimal.RequireFromString("15.0"),
	}
}

// FallbackRate applies when a stored loan has no rate and its type is not
// in the catalog.
var FallbackRate = decimal.RequireFromString("10.0")

type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	OwnerID         string          `gorm:"size:32;index:idx_loans_owner" json:"owner_id"`
	Type            Type            `gorm:"size:16" json:"loan_type"`
	Principal       decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`
	TenureMonths    int             `json:"tenure_months"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate"`
	Purpose         string          `gorm:"type:text" json:"purpose"`
	Status          Status          `gorm:"size:16;default:'PENDING'" json:"status"`
	AdminComments   string          `gorm:"type:text" json:"admin_comments,omitempty"`
	ApplicationDate time.Time       `gorm:"index" json:"application_date"`
	DecisionDate    *time.Time      `json:"decision_date,omitempty"`
	DecidedBy       string          `gorm:"size:32" json:"decided_by,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"-"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Normalize backfills fields that legacy or partially written records may
// lack. It runs once per load, before any transition is evaluated.
func (l *Loan) Normalize(now time.Time, rates RateCatalog) {
	if l.ApplicationDate.IsZero() {
		l.ApplicationDate = now
	}
	if l.Status == "" {
		l.Status = StatusPending
	}
	if l.InterestRate.IsZero() {
		if r, ok := rates[l.Type]; ok {
			l.InterestRate = r
		} else {
			l.InterestRate = FallbackRate
		}
	}
}
