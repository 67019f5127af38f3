package gormstore

import (
	"testing"

	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/sqlitedb"

	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with every ledger table.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := sqlitedb.Open(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
