package http

import (
	"encoding/json"
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/IykeSol/iykesol-crypto-bank/internal/adapter/middleware"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func TestRespondError_StatusByKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
		wantMsg  string
	}{
		{"validation", loan.ErrAmountOutOfRange, stdhttp.StatusBadRequest, "validation_error", loan.ErrAmountOutOfRange.Error()},
		{"conflict", loan.ErrOpenLoanExists, stdhttp.StatusBadRequest, "conflict_error", "you already have an active loan"},
		{"invalid state", loan.ErrAlreadyProcessed, stdhttp.StatusBadRequest, "invalid_state", "loan already processed"},
		{"unauthenticated", apperr.Unauthenticated("token required"), stdhttp.StatusUnauthorized, "unauthenticated", "token required"},
		{"forbidden", loan.ErrNotBorrower, stdhttp.StatusForbidden, "authorization_error", "access denied"},
		{"not found wrapped", fmt.Errorf("get: %w", loan.ErrNotFound), stdhttp.StatusNotFound, "not_found", "get: loan not found"},
		{"external hides cause", apperr.External("blockchain unavailable", errors.New("dial tcp 10.0.0.7:8545")), stdhttp.StatusServiceUnavailable, "external_service_error", "blockchain unavailable"},
		{"unknown", errors.New("driver: bad connection"), stdhttp.StatusInternalServerError, "internal_error", "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(stdhttp.MethodPost, "/", nil), rec)

			if err := respondError(c, tt.err); err != nil {
				t.Fatalf("respondError: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var er ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
				t.Fatalf("bad json: %v", err)
			}
			if er.Code != tt.wantKind || er.Error != tt.wantMsg {
				t.Fatalf("body = %+v", er)
			}
			if er.RemainingBalance != "" {
				t.Fatalf("remainingBalance should be omitted: %+v", er)
			}
		})
	}
}

func TestRespondError_RemainingBalance(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(stdhttp.MethodPost, "/", nil), rec)

	err := &loan.InsufficientRemainingError{
		Requested: decimal.NewFromInt(2000),
		Remaining: decimal.RequireFromString("1050"),
	}
	_ = respondError(c, err)

	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.RemainingBalance != "1050.00" || er.Code != "validation_error" {
		t.Fatalf("body = %+v", er)
	}
}

func TestBindValid(t *testing.T) {
	type req struct {
		ID     string `param:"id" json:"-" validate:"required,hex32"`
		TxHash string `json:"txHash"       validate:"required,txhash"`
	}
	tests := []struct {
		name      string
		id        string
		body      string
		wantErr   string
		wantField string
	}{
		{"ok", "0123456789abcdef0123456789abcdef", `{"txHash":"0x` + fmt.Sprintf("%064d", 7) + `"}`, "", ""},
		{"broken json", "0123456789abcdef0123456789abcdef", `{"txHash":`, "invalid body", ""},
		{"bad path id", "NOT-AN-ID", `{"txHash":"0x` + fmt.Sprintf("%064d", 7) + `"}`, "validation failed", "id"},
		{"bad hash", "0123456789abcdef0123456789abcdef", `{"txHash":"0x12"}`, "validation failed", "txHash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEchoWithValidator()
			r := httptest.NewRequest(stdhttp.MethodPost, "/x/"+tt.id, mustJSONString(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			c := e.NewContext(r, httptest.NewRecorder())
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			var got req
			er := bindValid(c, &got)
			if tt.wantErr == "" {
				if er != nil {
					t.Fatalf("unexpected error: %+v", er)
				}
				if got.ID != tt.id {
					t.Fatalf("path id not bound: %+v", got)
				}
				return
			}
			if er == nil || er.Error != tt.wantErr {
				t.Fatalf("got %+v, want %q", er, tt.wantErr)
			}
			if tt.wantField != "" && !containsField(er.Details, tt.wantField) {
				t.Fatalf("missing detail for %s: %+v", tt.wantField, er.Details)
			}
		})
	}
}

func TestCaller(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(stdhttp.MethodGet, "/", nil), httptest.NewRecorder())
	if _, err := caller(c); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("no user: err = %v", err)
	}
	middleware.SetUser(c, &user.User{UserID: "u1"})
	if u, err := caller(c); err != nil || u.UserID != "u1" {
		t.Fatalf("caller = %+v, %v", u, err)
	}
}
