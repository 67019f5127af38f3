package auth

import "github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

// Result is what a successful sign in or sign up hands back.
type Result struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

type WalletProof struct {
	Address   string
	Message   string
	Signature string
}
