package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"corebank/internal/domain/account"
	"corebank/internal/token"
	"corebank/pkg/id"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Usecase struct {
	accounts account.Repository
	tokens   token.Store
}

func NewUsecase(accounts account.Repository, tokens token.Store) *Usecase {
	return &Usecase{accounts: accounts, tokens: tokens}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionDTO struct {
	Token   string           `json:"token"`
	Account *account.Account `json:"account"`
}

// Register creates the owner's account with a zero opening balance.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*account.Account, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := u.accounts.GetByEmail(ctx, email); err == nil {
		return nil, account.ErrEmailTaken
	} else if !errors.Is(err, account.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &account.Account{
		AccountID:    id.NewID32(),
		OwnerID:      id.NewID32(),
		OwnerName:    strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         account.RoleCustomer,
		Balance:      decimal.Zero,
	}
	if err := u.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*SessionDTO, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	a, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	now := time.Now().UTC()
	a.LastLogin = &now
	if err := u.accounts.Save(ctx, a); err != nil {
		return nil, err
	}
	tok, err := u.tokens.Issue(ctx, token.Claims{OwnerID: a.OwnerID, Role: a.Role})
	if err != nil {
		return nil, err
	}
	return &SessionDTO{Token: tok, Account: a}, nil
}

func (u *Usecase) Logout(ctx context.Context, tok string) error {
	return u.tokens.Revoke(ctx, tok)
}
