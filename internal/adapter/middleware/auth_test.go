package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
	"github.com/IykeSol/iykesol-crypto-bank/pkg/token"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type loaderFn func(ctx context.Context, id string) (*user.User, error)

func (f loaderFn) GetByUserID(ctx context.Context, id string) (*user.User, error) { return f(ctx, id) }

func TestJWTAuth(t *testing.T) {
	tm := token.NewManager("secret", time.Hour)
	good, _ := tm.Issue(token.Claims{UserID: "u1", Role: "user"})
	ghost, _ := tm.Issue(token.Claims{UserID: "gone"})
	disabled, _ := tm.Issue(token.Claims{UserID: "off"})
	foreign, _ := token.NewManager("other-secret", time.Hour).Issue(token.Claims{UserID: "u1"})

	users := loaderFn(func(_ context.Context, id string) (*user.User, error) {
		switch id {
		case "u1":
			return &user.User{UserID: "u1", IsActive: true}, nil
		case "off":
			return &user.User{UserID: "off", IsActive: false}, nil
		case "gone":
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.New("db down")
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + good, http.StatusOK},
		{"lowercase scheme", "bearer " + good, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"no scheme", good, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"deleted user", "Bearer " + ghost, http.StatusUnauthorized},
		{"disabled user", "Bearer " + disabled, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			var seen *user.User
			e.GET("/me", func(c echo.Context) error {
				seen = CurrentUser(c)
				return c.NoContent(http.StatusOK)
			}, JWTAuth(tm, users))

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK && (seen == nil || seen.UserID != "u1") {
				t.Fatalf("user not in context: %+v", seen)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	for _, tc := range []struct {
		role user.Role
		want int
	}{
		{user.RoleAdmin, http.StatusOK},
		{user.RoleUser, http.StatusForbidden},
	} {
		e := echo.New()
		e.GET("/admin", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			func(next echo.HandlerFunc) echo.HandlerFunc {
				return func(c echo.Context) error {
					SetUser(c, &user.User{UserID: "x", Role: tc.role})
					return next(c)
				}
			},
			AdminOnly(),
		)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
		if rec.Code != tc.want {
			t.Fatalf("role %s: status = %d, want %d", tc.role, rec.Code, tc.want)
		}
	}
}
