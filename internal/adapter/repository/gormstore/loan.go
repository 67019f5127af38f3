package gormstore

import (
	"context"
	"time"

	loanDomain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) withPayments(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("paid_at ASC, id ASC")
	})
}

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.withPayments(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := forUpdate(r.db.WithContext(ctx)).Where("loan_id = ?", loanID).First(&out).Error; err != nil {
		return &out, err
	}
	// payments are append-only, no lock needed
	err := r.db.WithContext(ctx).Where("loan_id = ?", out.ID).Order("paid_at ASC, id ASC").Find(&out.Payments).Error
	return &out, err
}

func (r *LoanRepository) GetOpenLoanByBorrowerID(ctx context.Context, borrowerID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND status IN ?", borrowerID, loanDomain.OpenStatuses).
		Order("created_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByBorrowerID(ctx context.Context, borrowerID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.withPayments(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.withPayments(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListOverdue(ctx context.Context, now time.Time) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", loanDomain.StatusActive, now).
		Order("due_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) SaveIfStatus(ctx context.Context, l *loanDomain.Loan, expected loanDomain.Status) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ? AND status = ?", l.ID, expected).
		Updates(map[string]any{
			"status":               l.Status,
			"amount_paid":          l.AmountPaid,
			"remaining_amount":     l.RemainingAmount,
			"approved_by":          l.ApprovedBy,
			"approved_at":          l.ApprovedAt,
			"due_date":             l.DueDate,
			"rejection_reason":     l.RejectionReason,
			"disbursement_tx_hash": l.DisbursementTxHash,
			"updated_at":           now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrStaleState
	}
	l.UpdatedAt = now
	return nil
}

func (r *LoanRepository) AddPayment(ctx context.Context, p *loanDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}
