package http

import (
	"net/http"

	"corebank/internal/adapter/middleware"
	"corebank/internal/domain/account"

	"github.com/labstack/echo/v4"
)

// AccountHandler serves read-only account views straight off the
// repository; nothing here mutates a balance.
type AccountHandler struct{ accounts account.Repository }

func NewAccountHandler(accounts account.Repository) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	a, err := h.accounts.GetByOwnerID(c.Request().Context(), claims.OwnerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) List(c echo.Context) error {
	list, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
