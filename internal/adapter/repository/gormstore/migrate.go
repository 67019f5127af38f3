package gormstore

import (
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/balance"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

	"gorm.io/gorm"
)

// Migrate creates or updates every ledger table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&loan.Loan{},
		&loan.Payment{},
		&transaction.Transaction{},
		&balance.Balance{},
	)
}
