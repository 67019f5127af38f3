package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type AuthMethod string

const (
	AuthEmail  AuthMethod = "email"
	AuthWallet AuthMethod = "wallet"
	AuthGoogle AuthMethod = "google"
)

// Table: users
type User struct {
	ID            uint64     `gorm:"primaryKey;column:id" json:"-"`
	UserID        string     `gorm:"size:32;not null;uniqueIndex:ux_users_user_id" json:"id"`
	Email         *string    `gorm:"size:255;uniqueIndex:ux_users_email" json:"email,omitempty"`
	PasswordHash  string     `gorm:"size:255" json:"-"`
	WalletAddress *string    `gorm:"size:42;uniqueIndex:ux_users_wallet" json:"walletAddress,omitempty"`
	GoogleID      *string    `gorm:"size:64;uniqueIndex:ux_users_google" json:"-"`
	AuthMethod    AuthMethod `gorm:"size:16;not null" json:"authMethod"`
	Role          Role       `gorm:"size:16;not null;default:user" json:"role"`
	IsActive      bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

func (u *User) Wallet() string {
	if u == nil || u.WalletAddress == nil {
		return ""
	}
	return *u.WalletAddress
}

func (u *User) EmailOrEmpty() string {
	if u == nil || u.Email == nil {
		return ""
	}
	return *u.Email
}

// Summary is the public projection attached to loans in admin listings.
type Summary struct {
	UserID        string `json:"userId"`
	Email         string `json:"email,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

func (u *User) Summary() *Summary {
	if u == nil {
		return nil
	}
	return &Summary{UserID: u.UserID, Email: u.EmailOrEmpty(), WalletAddress: u.Wallet()}
}

// NormalizeAddress lowercases a hex address so lookups are case-insensitive.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const MinPasswordLen = 8

// StrongPassword requires MinPasswordLen characters with an upper case
// letter, a digit and one of !@#$%^&*.
func StrongPassword(pw string) bool {
	if len(pw) < MinPasswordLen {
		return false
	}
	var upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("!@#$%^&*", r):
			special = true
		}
	}
	return upper && digit && special
}
