package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	// Locks the row until the surrounding transaction ends (no-op on sqlite).
	GetByUserIDForUpdate(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByWallet(ctx context.Context, address string) (*User, error)
	GetManyByUserIDs(ctx context.Context, userIDs []string) ([]User, error)
	Save(ctx context.Context, u *User) error
	Count(ctx context.Context) (int64, error)
	// Newest first.
	List(ctx context.Context, limit int) ([]User, error)
}
