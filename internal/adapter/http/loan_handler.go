package http

import (
	"net/http"

	"corebank/internal/adapter/middleware"
	"corebank/internal/domain/account"
	loanuc "corebank/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loanuc.Usecase }

func NewLoanHandler(uc *loanuc.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	Type         string          `json:"loan_type"     validate:"required,oneof=EDUCATIONAL FARMING GOLD PERSONAL"`
	Principal    decimal.Decimal `json:"principal"`
	TenureMonths int             `json:"tenure_months" validate:"required,gte=1,lte=360"`
	Purpose      string          `json:"purpose"`
}

type decisionReq struct {
	Comments string `json:"comments"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Apply(c.Request().Context(), loanuc.ApplyInput{
		OwnerID:      claims.OwnerID,
		Type:         req.Type,
		Principal:    req.Principal,
		TenureMonths: req.TenureMonths,
		Purpose:      req.Purpose,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	if claims.Role != account.RoleAdmin && dto.OwnerID != claims.OwnerID {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Approve(c echo.Context) error { return h.decide(c, true) }
func (h *LoanHandler) Reject(c echo.Context) error  { return h.decide(c, false) }

func (h *LoanHandler) decide(c echo.Context, approve bool) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	in := loanuc.DecisionInput{LoanID: loanID, DecidedBy: claims.OwnerID, Comments: req.Comments}

	var (
		dto *loanuc.LoanDTO
		err error
	)
	if approve {
		dto, err = h.uc.Approve(c.Request().Context(), in)
	} else {
		dto, err = h.uc.Reject(c.Request().Context(), in)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListMine(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	list, err := h.uc.ListForOwner(c.Request().Context(), claims.OwnerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) ListPending(c echo.Context) error {
	list, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) ListAll(c echo.Context) error {
	list, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
