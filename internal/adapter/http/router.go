package http

import (
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/adapter/middleware"
	"github.com/IykeSol/iykesol-crypto-bank/pkg/token"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Health       *Handler
	Auth         *AuthHandler
	Loans        *LoanHandler
	Approvals    *ApprovalHandler
	Repayments   *RepaymentHandler
	Transactions *TransactionHandler
	Wallet       *WalletHandler
	Admin        *AdminHandler
}

type RouterConfig struct {
	Tokens *token.Manager
	Users  middleware.UserLoader
	// nil disables Idempotency-Key handling
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	// request logging; off in tests
	AccessLog bool
}

func NewRouter(h Handlers, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	if cfg.AccessLog {
		e.Use(echomw.Logger())
	}
	e.Use(echomw.Recover())

	e.GET("/health", h.Health.Health)

	api := e.Group("/api")
	authn := middleware.JWTAuth(cfg.Tokens, cfg.Users)
	admin := middleware.AdminOnly()

	a := api.Group("/auth")
	a.POST("/register", h.Auth.Register)
	a.POST("/login", h.Auth.Login)
	a.POST("/wallet-auth", h.Auth.WalletAuth)
	a.POST("/link-wallet", h.Auth.LinkWallet, authn)
	a.GET("/me", h.Auth.Me, authn)
	a.GET("/dashboard", h.Auth.Dashboard, authn)

	loans := api.Group("/loans", authn)
	if cfg.Redis != nil {
		loans.Use(middleware.Idempotency(cfg.Redis, cfg.IdempotencyTTL))
	}
	loans.POST("/request", h.Loans.RequestLoan)
	loans.GET("/my-loans", h.Loans.MyLoans)
	loans.GET("/all", h.Loans.AllLoans, admin)
	loans.GET("/:id", h.Loans.GetLoan)
	loans.POST("/approve/:id", h.Approvals.ApproveLoan, admin)
	loans.POST("/confirm-approval/:id", h.Approvals.ConfirmApproval, admin)
	loans.POST("/reject/:id", h.Loans.RejectLoan, admin)
	loans.POST("/pay/:id", h.Repayments.PayLoan)
	loans.POST("/confirm-payment/:id", h.Repayments.ConfirmPayment)

	txs := api.Group("/transactions", authn)
	txs.GET("", h.Transactions.List)
	txs.POST("", h.Transactions.Log)
	txs.GET("/check-status/:txHash", h.Transactions.CheckStatus)
	txs.GET("/:txHash", h.Transactions.Get)

	api.GET("/wallet/balance/:address", h.Wallet.Balance, authn)

	adm := api.Group("/admin", authn, admin)
	adm.GET("/metrics", h.Admin.Metrics)
	adm.GET("/users", h.Admin.Users)

	return e
}
