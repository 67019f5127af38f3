package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/IykeSol/iykesol-crypto-bank/internal/adapter/middleware"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/apperr"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"

	"github.com/labstack/echo/v4"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:      http.StatusBadRequest,
	apperr.KindConflict:        http.StatusBadRequest,
	apperr.KindInvalidState:    http.StatusBadRequest,
	apperr.KindUnauthenticated: http.StatusUnauthorized,
	apperr.KindAuthorization:   http.StatusForbidden,
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindExternal:        http.StatusServiceUnavailable,
}

// respondError maps usecase errors onto the JSON error envelope.
func respondError(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		slog.Error("unhandled error", "method", c.Request().Method, "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal_error"})
	}
	if kind == apperr.KindExternal {
		slog.Warn("dependency failure", "path", c.Path(), "err", errors.Unwrap(err))
	}

	body := ErrorResponse{Error: err.Error(), Code: string(kind)}
	var ir *loan.InsufficientRemainingError
	if errors.As(err, &ir) {
		body.RemainingBalance = ir.Remaining.StringFixed(2)
	}
	return c.JSON(status, body)
}

// bindValid binds path, query and body into req and validates it. A non-nil
// result is the 400 payload to send back.
func bindValid(c echo.Context, req any) *ErrorResponse {
	if err := c.Bind(req); err != nil {
		return &ErrorResponse{Error: "invalid body", Code: string(apperr.KindValidation)}
	}
	if err := c.Validate(req); err != nil {
		return &ErrorResponse{
			Error:   "validation failed",
			Code:    string(apperr.KindValidation),
			Details: ToFieldErrors(err),
		}
	}
	return nil
}

func caller(c echo.Context) (*user.User, error) {
	if u := middleware.CurrentUser(c); u != nil {
		return u, nil
	}
	return nil, apperr.Unauthenticated("authentication required")
}
