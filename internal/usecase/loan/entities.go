package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApplyInput struct {
	OwnerID      string          `json:"owner_id"`
	Type         string          `json:"loan_type"`
	Principal    decimal.Decimal `json:"principal"`
	TenureMonths int             `json:"tenure_months"`
	Purpose      string          `json:"purpose"`
}

type DecisionInput struct {
	LoanID    string `json:"loan_id"`
	DecidedBy string `json:"decided_by"`
	Comments  string `json:"comments"`
}

type LoanDTO struct {
	LoanID          string          `json:"loan_id"`
	OwnerID         string          `json:"owner_id"`
	Type            string          `json:"loan_type"`
	Principal       decimal.Decimal `json:"principal"`
	TenureMonths    int             `json:"tenure_months"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	Purpose         string          `json:"purpose"`
	Status          string          `json:"status"`
	AdminComments   string          `json:"admin_comments,omitempty"`
	ApplicationDate time.Time       `json:"application_date"`
	DecisionDate    *time.Time      `json:"decision_date,omitempty"`
	DecidedBy       string          `json:"decided_by,omitempty"`
}
