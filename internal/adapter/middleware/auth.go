package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
	"github.com/IykeSol/iykesol-crypto-bank/pkg/token"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const userContextKey = "user"

// UserLoader resolves the account a token was issued to.
type UserLoader interface {
	GetByUserID(ctx context.Context, userID string) (*user.User, error)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// JWTAuth requires a valid Bearer token and puts the (active) account in the
// echo context.
func JWTAuth(tokens *token.Manager, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c, "authorization header required")
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				return unauthorized(c, "invalid authorization header format")
			}

			claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return unauthorized(c, "invalid or expired token")
			}

			u, err := users.GetByUserID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return unauthorized(c, "user no longer exists")
				}
				return c.JSON(http.StatusServiceUnavailable, errorBody{Error: "user store unavailable", Code: string(apperr.KindExternal)})
			}
			if !u.IsActive {
				return c.JSON(http.StatusForbidden, errorBody{Error: user.ErrInactive.Error(), Code: string(apperr.KindAuthorization)})
			}

			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// AdminOnly must run after JWTAuth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentUser(c).IsAdmin() {
				return c.JSON(http.StatusForbidden, errorBody{Error: user.ErrAdminRequired.Error(), Code: string(apperr.KindAuthorization)})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated account, or nil outside JWTAuth.
func CurrentUser(c echo.Context) *user.User {
	u, _ := c.Get(userContextKey).(*user.User)
	return u
}

// SetUser is used by tests and internal callers that authenticate differently.
func SetUser(c echo.Context, u *user.User) { c.Set(userContextKey, u) }

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorBody{Error: msg, Code: string(apperr.KindUnauthenticated)})
}
