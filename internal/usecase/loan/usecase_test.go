package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/uow"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/eventmock"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/loanmock"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/uowmock"
	"github.com/IykeSol/iykesol-crypto-bank/internal/testutil/usermock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	borrowerID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	adminID    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	txHash     = "0x1111111111111111111111111111111111111111111111111111111111111111"
)

var (
	borrower = &user.User{UserID: borrowerID, Role: user.RoleUser}
	admin    = &user.User{UserID: adminID, Role: user.RoleAdmin}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pendingLoan() *loan.Loan {
	l, _ := loan.New("LN-1", borrowerID, dec("1000"), 30, "rent")
	l.ID = 7
	return l
}

func activeLoan() *loan.Loan {
	l := pendingLoan()
	_ = l.Activate(adminID, txHash, time.Now())
	return l
}

func newUC(loans *loanmock.Repo, users *usermock.Repo, events event.Publisher) *Usecase {
	return NewUsecase(loans, users, uowmock.Passthrough(uow.Repos{Loans: loans, Users: users}), events)
}

func TestUsecase_RequestLoan(t *testing.T) {
	in := RequestInput{Amount: dec("1000"), Duration: 30, Reason: "school fees"}
	knownBorrower := func() *usermock.Repo {
		return &usermock.Repo{GetByUserIDFn: func(context.Context, string) (*user.User, error) { return borrower, nil }}
	}

	tests := []struct {
		name    string
		in      RequestInput
		loans   func(created *bool) *loanmock.Repo
		wantErr error
	}{
		{
			name: "happy path creates pending loan",
			in:   in,
			loans: func(created *bool) *loanmock.Repo {
				return &loanmock.Repo{
					GetOpenLoanByBorrowerIDFn: func(context.Context, string) (*loan.Loan, error) {
						return nil, gorm.ErrRecordNotFound
					},
					CreateFn: func(_ context.Context, l *loan.Loan) error {
						*created = true
						if l.Status != loan.StatusPending || !l.TotalAmount.Equal(dec("1050")) {
							t.Fatalf("unexpected loan: %+v", l)
						}
						return nil
					},
				}
			},
		},
		{
			name: "open loan exists",
			in:   in,
			loans: func(created *bool) *loanmock.Repo {
				return &loanmock.Repo{
					GetOpenLoanByBorrowerIDFn: func(context.Context, string) (*loan.Loan, error) {
						return &loan.Loan{LoanID: "LN-OPEN", Status: loan.StatusActive}, nil
					},
					CreateFn: func(context.Context, *loan.Loan) error { *created = true; return nil },
				}
			},
			wantErr: loan.ErrOpenLoanExists,
		},
		{
			name:    "amount below minimum",
			in:      RequestInput{Amount: dec("50"), Duration: 30, Reason: "x"},
			loans:   func(*bool) *loanmock.Repo { return &loanmock.Repo{} },
			wantErr: loan.ErrAmountOutOfRange,
		},
		{
			name: "store failure is external",
			in:   in,
			loans: func(*bool) *loanmock.Repo {
				return &loanmock.Repo{
					GetOpenLoanByBorrowerIDFn: func(context.Context, string) (*loan.Loan, error) {
						return nil, errors.New("connection reset")
					},
				}
			},
			wantErr: apperr.ErrExternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			events := &eventmock.Events{}
			uc := newUC(tt.loans(&created), knownBorrower(), events)

			l, err := uc.RequestLoan(context.Background(), borrower, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want err=%v, got %v", tt.wantErr, err)
				}
				if created {
					t.Fatalf("loan must not be created on error")
				}
				if len(events.Published) != 0 {
					t.Fatalf("no event expected on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !created || l.BorrowerID != borrowerID {
				t.Fatalf("loan not created: %+v", l)
			}
			if got := events.Types(); len(got) != 1 || got[0] != event.LoanRequested {
				t.Fatalf("events = %v", got)
			}
		})
	}
}

func TestUsecase_RejectLoan(t *testing.T) {
	tests := []struct {
		name    string
		caller  *user.User
		load    func(context.Context, string) (*loan.Loan, error)
		wantErr error
	}{
		{"non admin", borrower, nil, user.ErrAdminRequired},
		{"not found", admin, func(context.Context, string) (*loan.Loan, error) { return nil, gorm.ErrRecordNotFound }, loan.ErrNotFound},
		{"already active", admin, func(context.Context, string) (*loan.Loan, error) { return activeLoan(), nil }, loan.ErrAlreadyProcessed},
		{"pending is rejected", admin, func(context.Context, string) (*loan.Loan, error) { return pendingLoan(), nil }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := false
			loans := &loanmock.Repo{
				GetByLoanIDForUpdateFn: tt.load,
				SaveIfStatusFn: func(_ context.Context, l *loan.Loan, expected loan.Status) error {
					saved = true
					if expected != loan.StatusPending || l.Status != loan.StatusRejected {
						t.Fatalf("unexpected CAS: %s -> %s", expected, l.Status)
					}
					return nil
				},
			}
			uc := newUC(loans, &usermock.Repo{}, nil)

			l, err := uc.RejectLoan(context.Background(), tt.caller, "LN-1", "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if saved {
					t.Fatalf("nothing should be saved")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !saved || l.RejectionReason != "Not specified" {
				t.Fatalf("unexpected loan: %+v", l)
			}
		})
	}
}

func TestUsecase_RejectLoan_LostRace(t *testing.T) {
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) { return pendingLoan(), nil },
		SaveIfStatusFn: func(context.Context, *loan.Loan, loan.Status) error {
			return loan.ErrStaleState
		},
	}
	_, err := newUC(loans, &usermock.Repo{}, nil).RejectLoan(context.Background(), admin, "LN-1", "no")
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("want invalid state, got %v", err)
	}
}

func TestRecordPaymentTx(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		payer     *user.User
		loan      func() *loan.Loan
		amount    string
		wantErr   error
		wantState loan.Status
	}{
		{"not borrower", admin, activeLoan, "10", loan.ErrNotBorrower, ""},
		{"not active", borrower, pendingLoan, "10", loan.ErrNotActive, ""},
		{"overpayment", borrower, activeLoan, "2000", apperr.ErrValidation, ""},
		{"partial", borrower, activeLoan, "50", nil, loan.StatusActive},
		{"full", borrower, activeLoan, "1050", nil, loan.StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var added *loan.Payment
			var savedFrom loan.Status
			loans := &loanmock.Repo{
				SaveIfStatusFn: func(_ context.Context, _ *loan.Loan, expected loan.Status) error {
					savedFrom = expected
					return nil
				},
				AddPaymentFn: func(_ context.Context, p *loan.Payment) error {
					added = p
					return nil
				},
			}
			l := tt.loan()
			p, err := RecordPaymentTx(context.Background(), uow.Repos{Loans: loans}, l, tt.payer.UserID, dec(tt.amount), txHash, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if added != nil || savedFrom != "" {
					t.Fatalf("nothing must be stored on a rejected payment")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if l.Status != tt.wantState {
				t.Fatalf("status = %s, want %s", l.Status, tt.wantState)
			}
			if savedFrom != loan.StatusActive {
				t.Fatalf("save must be guarded on active, got %q", savedFrom)
			}
			if added == nil || added != p || added.LoanID != 7 || !added.Amount.Equal(dec(tt.amount)) {
				t.Fatalf("payment not stored: %+v", added)
			}
		})
	}
}

func TestRecordPaymentTx_LostRace(t *testing.T) {
	loans := &loanmock.Repo{
		SaveIfStatusFn: func(context.Context, *loan.Loan, loan.Status) error { return loan.ErrStaleState },
		AddPaymentFn: func(context.Context, *loan.Payment) error {
			t.Fatalf("payment must not be stored after a lost status race")
			return nil
		},
	}
	_, err := RecordPaymentTx(context.Background(), uow.Repos{Loans: loans}, activeLoan(), borrowerID, dec("50"), txHash, time.Now())
	if !errors.Is(err, loan.ErrStaleState) {
		t.Fatalf("want concurrent update, got %v", err)
	}
}

func TestEmitPayment(t *testing.T) {
	partial := activeLoan()
	if _, err := partial.ApplyPayment(borrowerID, dec("50"), txHash, time.Now()); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	done := activeLoan()
	if _, err := done.ApplyPayment(borrowerID, dec("1050"), txHash, time.Now()); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}

	tests := []struct {
		name string
		loan *loan.Loan
		want []string
	}{
		{"partial", partial, []string{event.LoanPaymentRecord}},
		{"completed", done, []string{event.LoanPaymentRecord, event.LoanCompleted}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &eventmock.Events{}
			EmitPayment(context.Background(), events, tt.loan, txHash)
			got := events.Types()
			if len(got) != len(tt.want) {
				t.Fatalf("events = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("events = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestUsecase_ListAll(t *testing.T) {
	email := "borrower@x.io"
	approved := activeLoan()
	loans := &loanmock.Repo{
		ListAllFn: func(context.Context) ([]loan.Loan, error) {
			return []loan.Loan{*approved, *pendingLoan()}, nil
		},
	}
	users := &usermock.Repo{
		GetManyByUserIDsFn: func(_ context.Context, ids []string) ([]user.User, error) {
			if len(ids) != 2 {
				t.Fatalf("ids should be deduplicated, got %v", ids)
			}
			return []user.User{{UserID: borrowerID, Email: &email}, {UserID: adminID}}, nil
		},
	}
	uc := newUC(loans, users, nil)

	if _, err := uc.ListAll(context.Background(), borrower); !errors.Is(err, user.ErrAdminRequired) {
		t.Fatalf("non admin: %v", err)
	}

	out, err := uc.ListAll(context.Background(), admin)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(out) != 2 || out[0].Borrower == nil || out[0].Borrower.Email != email {
		t.Fatalf("borrower summary missing: %+v", out)
	}
	if out[0].Approver == nil || out[0].Approver.UserID != adminID || out[1].Approver != nil {
		t.Fatalf("approver summary wrong: %+v %+v", out[0].Approver, out[1].Approver)
	}
}

func TestUsecase_Get(t *testing.T) {
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(context.Context, string) (*loan.Loan, error) { return pendingLoan(), nil },
	}
	uc := newUC(loans, &usermock.Repo{}, nil)
	stranger := &user.User{UserID: "cccccccccccccccccccccccccccccccc", Role: user.RoleUser}

	if _, err := uc.Get(context.Background(), stranger, "LN-1"); !errors.Is(err, apperr.ErrAuthorization) {
		t.Fatalf("stranger: %v", err)
	}
	for _, caller := range []*user.User{borrower, admin} {
		if _, err := uc.Get(context.Background(), caller, "LN-1"); err != nil {
			t.Fatalf("%s: %v", caller.UserID, err)
		}
	}
}
