package http

import (
	"net/http"

	domainLoan "github.com/IykeSol/iykesol-crypto-bank/internal/domain/loan"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type payLoanReq struct {
	ID     string          `param:"id" json:"-" validate:"required,hex32"`
	Amount decimal.Decimal `json:"amount"       validate:"required,gt=0,dec2"`
}

type confirmPaymentReq struct {
	ID     string          `param:"id" json:"-" validate:"required,hex32"`
	Amount decimal.Decimal `json:"amount"       validate:"required,gt=0,dec2"`
	TxHash string          `json:"txHash"       validate:"required,txhash"`
}

func (h *RepaymentHandler) PayLoan(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req payLoanReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	p, err := h.uc.Initiate(c.Request().Context(), u, req.ID, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":          true,
		"requiresTransfer": true,
		"payment":          p,
	})
}

func (h *RepaymentHandler) ConfirmPayment(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req confirmPaymentReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	l, err := h.uc.Confirm(c.Request().Context(), u, req.ID, req.Amount, req.TxHash)
	if err != nil {
		return respondError(c, err)
	}
	msg := "Payment recorded successfully"
	if l.Status == domainLoan.StatusCompleted {
		msg = "Loan fully repaid"
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": msg,
		"loan":    l,
	})
}
