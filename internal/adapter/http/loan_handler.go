package http

import (
	"net/http"

	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type requestLoanReq struct {
	Amount   decimal.Decimal `json:"amount"   validate:"required,gt=0,dec2"`
	Duration int             `json:"duration" validate:"required,gt=0"`
	Reason   string          `json:"reason"   validate:"required"`
}

// path-only requests
type loanIDReq struct {
	ID string `param:"id" json:"-" validate:"required,hex32"`
}

type rejectLoanReq struct {
	ID     string `param:"id" json:"-" validate:"required,hex32"`
	Reason string `json:"reason"`
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req requestLoanReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	l, err := h.uc.RequestLoan(c.Request().Context(), u, loan.RequestInput{
		Amount:   req.Amount,
		Duration: req.Duration,
		Reason:   req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Loan request submitted successfully",
		"loan":    l,
	})
}

func (h *LoanHandler) MyLoans(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	loans, err := h.uc.ListMine(c.Request().Context(), u)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "loans": loans})
}

func (h *LoanHandler) AllLoans(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	loans, err := h.uc.ListAll(c.Request().Context(), u)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "loans": loans})
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req loanIDReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	l, err := h.uc.Get(c.Request().Context(), u, req.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "loan": l})
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req rejectLoanReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	l, err := h.uc.RejectLoan(c.Request().Context(), u, req.ID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Loan rejected",
		"loan":    l,
	})
}
