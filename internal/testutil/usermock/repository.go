package usermock

import (
	"context"

	domain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies user.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, u *domain.User) error
	GetByUserIDFn          func(ctx context.Context, userID string) (*domain.User, error)
	GetByUserIDForUpdateFn func(ctx context.Context, userID string) (*domain.User, error)
	GetByEmailFn           func(ctx context.Context, email string) (*domain.User, error)
	GetByWalletFn          func(ctx context.Context, address string) (*domain.User, error)
	GetManyByUserIDsFn     func(ctx context.Context, userIDs []string) ([]domain.User, error)
	SaveFn                 func(ctx context.Context, u *domain.User) error
	CountFn                func(ctx context.Context) (int64, error)
	ListFn                 func(ctx context.Context, limit int) ([]domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

// GetByUserIDForUpdate falls back to GetByUserIDFn when no lock-specific func is set.
func (m *Repo) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDForUpdateFn != nil {
		return m.GetByUserIDForUpdateFn(ctx, userID)
	}
	return m.GetByUserID(ctx, userID)
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByWallet(ctx context.Context, address string) (*domain.User, error) {
	if m.GetByWalletFn != nil {
		return m.GetByWalletFn(ctx, address)
	}
	return nil, context.Canceled
}

func (m *Repo) GetManyByUserIDs(ctx context.Context, userIDs []string) ([]domain.User, error) {
	if m.GetManyByUserIDsFn != nil {
		return m.GetManyByUserIDsFn(ctx, userIDs)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, context.Canceled
}

func (m *Repo) List(ctx context.Context, limit int) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit)
	}
	return nil, context.Canceled
}
