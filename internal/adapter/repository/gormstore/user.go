package gormstore

import (
	"context"

	userDomain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := forUpdate(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("email = ?", userDomain.NormalizeEmail(email)).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByWallet(ctx context.Context, address string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("wallet_address = ?", userDomain.NormalizeAddress(address)).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetManyByUserIDs(ctx context.Context, userIDs []string) ([]userDomain.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var out []userDomain.User
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&out).Error
	return out, err
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userDomain.User{}).Count(&n).Error
	return n, err
}

func (r *UserRepository) List(ctx context.Context, limit int) ([]userDomain.User, error) {
	var out []userDomain.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}
