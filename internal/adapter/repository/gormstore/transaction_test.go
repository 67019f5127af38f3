package gormstore

import (
	"context"
	"errors"
	"testing"
	"time"

	txDomain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func makeTx(hash, userID string, status txDomain.Status, createdAt time.Time) *txDomain.Transaction {
	return &txDomain.Transaction{
		TxHash:      hash,
		UserID:      userID,
		FromAddress: "0x1111111111111111111111111111111111111111",
		ToAddress:   "0x2222222222222222222222222222222222222222",
		Amount:      decimal.NewFromInt(5),
		BurnAmount:  decimal.Zero,
		Status:      status,
		Type:        txDomain.TypeTransfer,
		Metadata:    txDomain.Metadata{"note": "test"},
		CreatedAt:   createdAt,
	}
}

func TestTransaction_CreateRejectsDuplicateHash(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := repo.Create(ctx, makeTx("0xdup", "u1", txDomain.StatusConfirmed, now)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.Create(ctx, makeTx("0xdup", "u2", txDomain.StatusConfirmed, now)); err == nil {
		t.Fatalf("duplicate tx hash must be rejected")
	}

	var n int64
	db.Model(&txDomain.Transaction{}).Where("tx_hash = ?", "0xdup").Count(&n)
	if n != 1 {
		t.Fatalf("rows with hash = %d, want 1", n)
	}

	got, err := repo.GetByTxHash(ctx, "0xdup")
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != "u1" || got.Metadata["note"] != "test" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestTransaction_ListPendingSince(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seed := []*txDomain.Transaction{
		makeTx("0xrecent", "u1", txDomain.StatusPending, now.Add(-time.Hour)),
		makeTx("0xstale", "u1", txDomain.StatusPending, now.Add(-25*time.Hour)),
		makeTx("0xdone", "u1", txDomain.StatusConfirmed, now.Add(-time.Hour)),
	}
	for _, tx := range seed {
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListPendingSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].TxHash != "0xrecent" {
		t.Fatalf("unexpected pending window: %+v", got)
	}
}

func TestTransaction_UpdateStatusIfPending(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	tx := makeTx("0xcas", "u1", txDomain.StatusPending, time.Now().UTC())
	if err := repo.Create(ctx, tx); err != nil {
		t.Fatal(err)
	}

	block := uint64(1234)
	ok, err := repo.UpdateStatusIfPending(ctx, tx.ID, txDomain.StatusConfirmed, &block)
	if err != nil || !ok {
		t.Fatalf("first update: ok=%v err=%v", ok, err)
	}
	ok, err = repo.UpdateStatusIfPending(ctx, tx.ID, txDomain.StatusFailed, nil)
	if err != nil || ok {
		t.Fatalf("resolved record must not change: ok=%v err=%v", ok, err)
	}

	got, _ := repo.GetByTxHash(ctx, "0xcas")
	if got.Status != txDomain.StatusConfirmed || got.BlockNumber == nil || *got.BlockNumber != 1234 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestTransaction_ListByUserAndCount(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	for i, h := range []string{"0xa", "0xb", "0xc"} {
		if err := repo.Create(ctx, makeTx(h, "u1", txDomain.StatusConfirmed, now.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Create(ctx, makeTx("0xother", "u2", txDomain.StatusConfirmed, now.Add(-48*time.Hour))); err != nil {
		t.Fatal(err)
	}

	page, total, err := repo.ListByUser(ctx, "u1", 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(page) != 2 || page[0].TxHash != "0xc" {
		t.Fatalf("unexpected page: total=%d %+v", total, page)
	}

	if _, err := repo.GetByTxHashForUser(ctx, "0xother", "u1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("other user's record must not be visible, got %v", err)
	}

	n, err := repo.CountSince(ctx, now.Add(-24*time.Hour))
	if err != nil || n != 3 {
		t.Fatalf("CountSince = %d, %v; want 3", n, err)
	}
}
