package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"corebank/internal/domain/account"
	"corebank/internal/token"

	"github.com/labstack/echo/v4"
)

func claimsEcho(c echo.Context) error {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no claims"})
	}
	return c.JSON(http.StatusOK, map[string]string{"owner_id": claims.OwnerID})
}

func TestAuth(t *testing.T) {
	tokens := token.NewMemoryStore(time.Hour)
	tok, err := tokens.Issue(context.Background(), token.Claims{OwnerID: "owner-1", Role: account.RoleCustomer})
	if err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	e.GET("/me", claimsEcho, Auth(tokens))

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set(HeaderAuthToken, header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(tok); rec.Code != http.StatusOK {
		t.Fatalf("valid token => %d, want 200: %s", rec.Code, rec.Body)
	}
	if rec := do(""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token => %d, want 401", rec.Code)
	}
	if rec := do("bogus"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bogus token => %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := token.NewMemoryStore(time.Hour)
	adminTok, _ := tokens.Issue(context.Background(), token.Claims{OwnerID: "admin-1", Role: account.RoleAdmin})
	custTok, _ := tokens.Issue(context.Background(), token.Claims{OwnerID: "cust-1", Role: account.RoleCustomer})

	e := echo.New()
	e.GET("/admin", claimsEcho, Auth(tokens), RequireRole(account.RoleAdmin))

	do := func(tok string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(HeaderAuthToken, tok)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(adminTok); code != http.StatusOK {
		t.Fatalf("admin => %d, want 200", code)
	}
	if code := do(custTok); code != http.StatusForbidden {
		t.Fatalf("customer => %d, want 403", code)
	}
}
