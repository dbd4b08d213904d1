package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"corebank/internal/domain/account"
	"corebank/internal/domain/loan"
	"corebank/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain failures to HTTP statuses. Anything unmapped is an
// unexpected storage fault and surfaces as 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, account.ErrNotFound),
		errors.Is(err, account.ErrRecipientNotFound),
		errors.Is(err, loan.ErrNotFound),
		errors.Is(err, loan.ErrOwnerNotFound):
		return http.StatusNotFound
	case errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, account.ErrSelfTransfer),
		errors.Is(err, loan.ErrUnknownType):
		return http.StatusBadRequest
	case errors.Is(err, account.ErrInsufficientFunds),
		errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, loan.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return c.JSON(he.Code, ErrorResponse{Error: fmt.Sprint(he.Message)})
	}
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
