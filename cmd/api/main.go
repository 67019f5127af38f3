package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/adapter/chain/ethereum"
	"github.com/IykeSol/iykesol-crypto-bank/internal/adapter/events"
	httpadp "github.com/IykeSol/iykesol-crypto-bank/internal/adapter/http"
	"github.com/IykeSol/iykesol-crypto-bank/internal/adapter/repository/gormstore"
	"github.com/IykeSol/iykesol-crypto-bank/internal/config"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"
	"github.com/IykeSol/iykesol-crypto-bank/internal/infrastructure/cache"
	"github.com/IykeSol/iykesol-crypto-bank/internal/infrastructure/db"
	"github.com/IykeSol/iykesol-crypto-bank/internal/infrastructure/logging"
	"github.com/IykeSol/iykesol-crypto-bank/internal/infrastructure/scheduler"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/approval"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/auth"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/balance"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/metrics"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/overdue"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/reconcile"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/repayment"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/transaction"
	"github.com/IykeSol/iykesol-crypto-bank/pkg/token"

	"github.com/redis/go-redis/v9"
)

const eventStreamMaxLen = 10_000

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.New(cfg.LogLevel, cfg.LogFormat))
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		slog.Error("shutdown with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), cfg.DBLogLevel)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if cfg.AutoMigrate {
		if err := gormstore.Migrate(gdb); err != nil {
			return err
		}
	}

	var (
		rdb       *redis.Client
		publisher event.Publisher = event.Nop{}
	)
	if cfg.RedisAddr != "" {
		rdb, err = cache.OpenRedis(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: cfg.RedisPoolSize,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb, eventStreamMaxLen)
	} else {
		slog.Warn("REDIS_ADDR not set: idempotency keys and event stream disabled")
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.ChainTimeout)
	chainClient, err := ethereum.Dial(dialCtx, cfg.RPCURL, cfg.TokenContract)
	cancel()
	if err != nil {
		return err
	}
	defer chainClient.Close()
	reader := chain.WithTimeout(chainClient, cfg.ChainTimeout)

	// stores
	loans := gormstore.NewLoanRepository(gdb)
	users := gormstore.NewUserRepository(gdb)
	txs := gormstore.NewTransactionRepository(gdb)
	balances := gormstore.NewBalanceRepository(gdb)
	uow := gormstore.NewGormUoW(gdb)

	// usecases
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	authUC := auth.NewUsecase(users, tokens, ethereum.Verifier{})
	balanceUC := balance.NewUsecase(balances, reader, cfg.BalanceTTL)
	loanUC := loan.NewUsecase(loans, users, uow, publisher)
	approvalUC := approval.NewUsecase(loans, users, uow, reader, publisher, approval.Options{
		VerifyConfirmations: cfg.VerifyConfirmations,
		AdminWallet:         cfg.AdminWallet,
	})
	repaymentUC := repayment.NewUsecase(loans, users, uow, reader, publisher, repayment.Options{
		AdminWallet:         cfg.AdminWallet,
		VerifyConfirmations: cfg.VerifyConfirmations,
	})
	policy, err := reconcile.ParsePolicy(cfg.ReconcileLookupError)
	if err != nil {
		return err
	}
	reconcileUC := reconcile.NewUsecase(txs, chainClient, publisher, reconcile.Options{
		Policy:       policy,
		ChainTimeout: cfg.ChainTimeout,
	})
	overdueUC := overdue.NewUsecase(loans, uow, publisher)

	// background jobs
	sched, err := scheduler.New(ctx)
	if err != nil {
		return err
	}
	if err := sched.Every("reconcile-transactions", cfg.ReconcileInterval, func(ctx context.Context) error {
		_, err := reconcileUC.RunOnce(ctx)
		return err
	}); err != nil {
		return err
	}
	if cfg.DefaultScanInterval > 0 {
		if err := sched.Every("mark-overdue-loans", cfg.DefaultScanInterval, func(ctx context.Context) error {
			_, err := overdueUC.RunOnce(ctx)
			return err
		}); err != nil {
			return err
		}
	}
	sched.Start()

	e := httpadp.NewRouter(httpadp.Handlers{
		Health:       httpadp.NewHandler(sqlDB),
		Auth:         httpadp.NewAuthHandler(authUC, balanceUC),
		Loans:        httpadp.NewLoanHandler(loanUC),
		Approvals:    httpadp.NewApprovalHandler(approvalUC),
		Repayments:   httpadp.NewRepaymentHandler(repaymentUC),
		Transactions: httpadp.NewTransactionHandler(transaction.NewUsecase(txs, publisher), reconcileUC),
		Wallet:       httpadp.NewWalletHandler(balanceUC),
		Admin:        httpadp.NewAdminHandler(metrics.NewUsecase(users, txs, reader)),
	}, httpadp.RouterConfig{
		Tokens:         tokens,
		Users:          users,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		AccessLog:      true,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		slog.Info("listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = sched.Shutdown()
			return err
		}
	}

	slog.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", "err", err)
	}
	return sched.Shutdown()
}
