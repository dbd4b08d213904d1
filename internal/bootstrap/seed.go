package bootstrap

import (
	"context"
	"fmt"
	"log"

	"corebank/internal/domain/account"
	"corebank/internal/domain/ledger"
	"corebank/pkg/id"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	name     string
	email    string
	password string
	role     account.Role
	balance  string
}

var demoAccounts = []seedAccount{
	{"Admin", "admin@corebank.dev", "admin123", account.RoleAdmin, "0.00"},
	{"Alice", "alice@corebank.dev", "password", account.RoleCustomer, "1000.00"},
	{"Bob", "bob@corebank.dev", "password", account.RoleCustomer, "500.00"},
	{"Employee", "employee@corebank.dev", "employee123", account.RoleEmployee, "0.00"},
}

// Seed loads the demo accounts and their opening ledger entries into an
// empty store. A non-empty store is left alone.
func Seed(ctx context.Context, accounts account.Repository, entries ledger.Repository) error {
	existing, err := accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list accounts: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	byEmail := make(map[string]*account.Account, len(demoAccounts))
	for _, s := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}
		a := &account.Account{
			AccountID:    id.NewID32(),
			OwnerID:      id.NewID32(),
			OwnerName:    s.name,
			Email:        s.email,
			PasswordHash: string(hash),
			Role:         s.role,
			Balance:      decimal.RequireFromString(s.balance),
		}
		if err := accounts.Create(ctx, a); err != nil {
			return fmt.Errorf("seed: create %s: %w", s.email, err)
		}
		byEmail[s.email] = a
	}

	// Opening entries; each seeded entry bumps its account's counter so
	// the entries-per-account bookkeeping starts consistent.
	opening := []struct {
		email string
		kind  ledger.Kind
		amt   string
		desc  string
	}{
		{"alice@corebank.dev", ledger.KindDeposit, "200.00", "Initial deposit"},
		{"bob@corebank.dev", ledger.KindWithdraw, "50.00", "ATM withdrawal"},
	}
	for _, o := range opening {
		a := byEmail[o.email]
		e := &ledger.Entry{
			AccountID:   a.AccountID,
			Amount:      decimal.RequireFromString(o.amt),
			Kind:        o.kind,
			Description: o.desc,
		}
		if err := entries.Append(ctx, e); err != nil {
			return fmt.Errorf("seed: append entry for %s: %w", o.email, err)
		}
		a.TotalTransactions++
		if err := accounts.Save(ctx, a); err != nil {
			return fmt.Errorf("seed: save %s: %w", o.email, err)
		}
	}

	log.Printf("bootstrap: seeded %d demo accounts", len(demoAccounts))
	return nil
}
