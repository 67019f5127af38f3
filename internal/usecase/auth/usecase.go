package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
	"github.com/IykeSol/iykesol-crypto-bank/pkg/id"
	"github.com/IykeSol/iykesol-crypto-bank/pkg/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const storeUnavailable = "user store unavailable"

var ErrWeakPassword = apperr.Validation("password must contain uppercase, number, and special character")

type Usecase struct {
	userRepo user.Repository
	tokens   *token.Manager
	verifier chain.SignatureVerifier
	cost     int
}

func NewUsecase(users user.Repository, tokens *token.Manager, verifier chain.SignatureVerifier) *Usecase {
	return &Usecase{userRepo: users, tokens: tokens, verifier: verifier, cost: bcrypt.DefaultCost}
}

func (u *Usecase) Register(ctx context.Context, email, password string) (*Result, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if !user.StrongPassword(password) {
		return nil, ErrWeakPassword
	}

	_, err := u.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, user.ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.OrExternal(err, storeUnavailable)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	nu := &user.User{
		UserID:       id.NewID32(),
		Email:        &email,
		PasswordHash: string(hash),
		AuthMethod:   user.AuthEmail,
		Role:         user.RoleUser,
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, nu); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, user.ErrEmailTaken
		}
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	return u.issue(nu)
}

// Login never says which of email or password was wrong.
func (u *Usecase) Login(ctx context.Context, email, password string) (*Result, error) {
	found, err := u.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	if found.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !found.IsActive {
		return nil, user.ErrInactive
	}
	return u.issue(found)
}

// WalletLogin signs in with a wallet signature, creating the account on
// first use.
func (u *Usecase) WalletLogin(ctx context.Context, p WalletProof) (*Result, error) {
	addr, err := u.verify(p)
	if err != nil {
		return nil, err
	}

	found, err := u.userRepo.GetByWallet(ctx, addr)
	switch {
	case err == nil:
		if !found.IsActive {
			return nil, user.ErrInactive
		}
		return u.issue(found)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.OrExternal(err, storeUnavailable)
	}

	nu := &user.User{
		UserID:        id.NewID32(),
		WalletAddress: &addr,
		AuthMethod:    user.AuthWallet,
		Role:          user.RoleUser,
		IsActive:      true,
	}
	if err := u.userRepo.Create(ctx, nu); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// first logins raced; the other one created the row
			existing, gerr := u.userRepo.GetByWallet(ctx, addr)
			if gerr != nil {
				return nil, apperr.OrExternal(gerr, storeUnavailable)
			}
			return u.issue(existing)
		}
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	return u.issue(nu)
}

// LinkWallet attaches a verified wallet to the caller's account.
func (u *Usecase) LinkWallet(ctx context.Context, caller *user.User, p WalletProof) (*user.User, error) {
	addr, err := u.verify(p)
	if err != nil {
		return nil, err
	}

	owner, err := u.userRepo.GetByWallet(ctx, addr)
	switch {
	case err == nil && owner.UserID != caller.UserID:
		return nil, user.ErrWalletTaken
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.OrExternal(err, storeUnavailable)
	}

	me, err := u.userRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	me.WalletAddress = &addr
	if err := u.userRepo.Save(ctx, me); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, user.ErrWalletTaken
		}
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	return me, nil
}

func (u *Usecase) Me(ctx context.Context, caller *user.User) (*user.User, error) {
	me, err := u.userRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, apperr.OrExternal(err, storeUnavailable)
	}
	return me, nil
}

func (u *Usecase) verify(p WalletProof) (string, error) {
	addr := user.NormalizeAddress(p.Address)
	if addr == "" || strings.TrimSpace(p.Signature) == "" || p.Message == "" {
		return "", apperr.Validation("walletAddress, message and signature are required")
	}
	ok, err := u.verifier.Verify(p.Message, p.Signature, addr)
	if err != nil || !ok {
		return "", user.ErrInvalidSignature
	}
	return addr, nil
}

func (u *Usecase) issue(usr *user.User) (*Result, error) {
	tok, err := u.tokens.Issue(token.Claims{
		UserID:        usr.UserID,
		Email:         usr.EmailOrEmpty(),
		WalletAddress: usr.Wallet(),
		Role:          string(usr.Role),
	})
	if err != nil {
		return nil, err
	}
	return &Result{Token: tok, User: usr}, nil
}
