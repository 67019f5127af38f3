package user

import "github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"

var (
	ErrNotFound           = apperr.NotFound("user not found")
	ErrEmailTaken         = apperr.Conflict("email already registered")
	ErrWalletTaken        = apperr.Conflict("wallet already linked to another account")
	ErrInvalidCredentials = apperr.Unauthenticated("invalid credentials")
	ErrInvalidSignature   = apperr.Unauthenticated("invalid wallet signature")
	ErrInactive           = apperr.Forbidden("account is disabled")
	ErrAdminRequired      = apperr.Forbidden("admin access required")
)

// RequireAdmin returns ErrAdminRequired unless u is an admin.
func RequireAdmin(u *User) error {
	if !u.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}
