package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "corebank/internal/adapter/http"
	"corebank/internal/adapter/middleware"
	"corebank/internal/adapter/repository/mysql"
	"corebank/internal/bootstrap"
	"corebank/internal/config"
	accountDomain "corebank/internal/domain/account"
	ledgerDomain "corebank/internal/domain/ledger"
	loanDomain "corebank/internal/domain/loan"
	"corebank/internal/infrastructure/cache"
	"corebank/internal/infrastructure/db"
	"corebank/internal/token"
	authuc "corebank/internal/usecase/auth"
	loanuc "corebank/internal/usecase/loan"
	txuc "corebank/internal/usecase/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(&accountDomain.Account{}, &ledgerDomain.Entry{}, &loanDomain.Loan{}); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	accounts := mysql.NewAccountRepository(gdb)
	entries := mysql.NewLedgerRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	tokens := token.NewRedisStore(rdb, cfg.TokenTTL)

	txUC := txuc.NewUsecase(accounts, entries, guow)
	loanUC := loanuc.NewUsecase(loans, accounts, guow, txUC, loanDomain.DefaultRates())
	authUC := authuc.NewUsecase(accounts, tokens)

	if cfg.SeedDemo {
		if err := bootstrap.Seed(context.Background(), accounts, entries); err != nil {
			log.Fatal(err)
		}
	}

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authUC)
	acctH := httpadp.NewAccountHandler(accounts)
	txH := httpadp.NewTransactionHandler(txUC, accounts)
	loanH := httpadp.NewLoanHandler(loanUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	authed := middleware.Auth(tokens)
	adminOnly := middleware.RequireRole(accountDomain.RoleAdmin)
	idemp := middleware.Idempotency(rdb, cfg.IdempTTL)

	e.GET("/health", h.Health)

	e.POST("/auth/register", authH.Register)
	e.POST("/auth/login", authH.Login)
	e.POST("/auth/logout", authH.Logout, authed)

	e.GET("/accounts/me", acctH.Me, authed)
	e.GET("/accounts", acctH.List, authed, adminOnly)

	e.POST("/transactions", txH.Create, authed, idemp)
	e.POST("/transactions/transfer", txH.Transfer, authed, idemp)
	e.POST("/transactions/transfer-by-email", txH.TransferByEmail, authed, idemp)
	e.GET("/transactions/my", txH.MyHistory, authed)
	e.GET("/transactions/account/:account_id", txH.AccountHistory, authed)

	e.POST("/loans", loanH.Apply, authed)
	e.GET("/loans/my", loanH.ListMine, authed)
	e.GET("/loans/pending", loanH.ListPending, authed, adminOnly)
	e.GET("/loans", loanH.ListAll, authed, adminOnly)
	e.GET("/loans/:loan_id", loanH.Get, authed)
	e.POST("/loans/:loan_id/approve", loanH.Approve, authed, adminOnly)
	e.POST("/loans/:loan_id/reject", loanH.Reject, authed, adminOnly)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
