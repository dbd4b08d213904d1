package http

import (
	"net/http"

	"corebank/internal/adapter/middleware"
	"corebank/internal/domain/account"
	"corebank/internal/domain/ledger"
	"corebank/internal/usecase/transaction"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	uc       *transaction.Usecase
	accounts account.Repository
}

func NewTransactionHandler(uc *transaction.Usecase, accounts account.Repository) *TransactionHandler {
	return &TransactionHandler{uc: uc, accounts: accounts}
}

// Amounts arrive as JSON numbers or strings; decimal.Decimal accepts both
// and the usecase enforces positivity and scale.
type moneyMoveReq struct {
	Type        string          `json:"type"   validate:"required,oneof=DEPOSIT WITHDRAW"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type transferReq struct {
	ToAccountID string          `json:"to_account_id" validate:"required,hex32"`
	Amount      decimal.Decimal `json:"amount"`
}

type transferByEmailReq struct {
	ToEmail string          `json:"to_email" validate:"required,email"`
	Amount  decimal.Decimal `json:"amount"`
}

// ownAccount resolves the authenticated caller's account.
func (h *TransactionHandler) ownAccount(c echo.Context) (*account.Account, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return h.accounts.GetByOwnerID(c.Request().Context(), claims.OwnerID)
}

// Create handles DEPOSIT and WITHDRAW against the caller's own account.
func (h *TransactionHandler) Create(c echo.Context) error {
	var req moneyMoveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.ownAccount(c)
	if err != nil {
		return writeError(c, err)
	}

	var rcpt *transaction.Receipt
	switch ledger.Kind(req.Type) {
	case ledger.KindDeposit:
		rcpt, err = h.uc.Deposit(c.Request().Context(), transaction.DepositInput{
			AccountID: a.AccountID, Amount: req.Amount, Description: req.Description,
		})
	case ledger.KindWithdraw:
		rcpt, err = h.uc.Withdraw(c.Request().Context(), transaction.WithdrawInput{
			AccountID: a.AccountID, Amount: req.Amount, Description: req.Description,
		})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported type for this endpoint"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rcpt)
}

func (h *TransactionHandler) Transfer(c echo.Context) error {
	var req transferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.ownAccount(c)
	if err != nil {
		return writeError(c, err)
	}
	rcpt, err := h.uc.Transfer(c.Request().Context(), transaction.TransferInput{
		FromAccountID: a.AccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rcpt)
}

func (h *TransactionHandler) TransferByEmail(c echo.Context) error {
	var req transferByEmailReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.ownAccount(c)
	if err != nil {
		return writeError(c, err)
	}
	rcpt, err := h.uc.TransferByEmail(c.Request().Context(), transaction.TransferByEmailInput{
		FromAccountID: a.AccountID,
		ToEmail:       req.ToEmail,
		Amount:        req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rcpt)
}

// MyHistory lists the caller's own ledger entries, newest first.
func (h *TransactionHandler) MyHistory(c echo.Context) error {
	a, err := h.ownAccount(c)
	if err != nil {
		return writeError(c, err)
	}
	entries, err := h.uc.History(c.Request().Context(), a.AccountID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// AccountHistory lists any account's entries; permitted for the account's
// own owner and for admins.
func (h *TransactionHandler) AccountHistory(c echo.Context) error {
	accountID := c.Param("account_id")
	if !reHex32.MatchString(accountID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id"})
	}
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	if claims.Role != account.RoleAdmin {
		own, err := h.accounts.GetByOwnerID(c.Request().Context(), claims.OwnerID)
		if err != nil {
			return writeError(c, err)
		}
		if own.AccountID != accountID {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
		}
	}
	entries, err := h.uc.History(c.Request().Context(), accountID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
