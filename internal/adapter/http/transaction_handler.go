package http

import (
	"net/http"

	domain "github.com/IykeSol/iykesol-crypto-bank/internal/domain/transaction"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/reconcile"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/transaction"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	uc        *transaction.Usecase
	reconcile *reconcile.Usecase
}

func NewTransactionHandler(uc *transaction.Usecase, rc *reconcile.Usecase) *TransactionHandler {
	return &TransactionHandler{uc: uc, reconcile: rc}
}

type listTransactionsReq struct {
	Page  int `query:"page"  validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0"`
}

type logTransactionReq struct {
	TxHash      string          `json:"txHash"      validate:"required,txhash"`
	From        string          `json:"from"        validate:"required,ethaddr"`
	To          string          `json:"to"          validate:"required,ethaddr"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	BurnAmount  decimal.Decimal `json:"burnAmount"`
	BlockNumber *uint64         `json:"blockNumber"`
	Type        string          `json:"type"        validate:"required,oneof=deposit withdrawal transfer"`
	Status      string          `json:"status"      validate:"omitempty,oneof=pending confirmed"`
	Metadata    domain.Metadata `json:"metadata"`
}

type txHashReq struct {
	TxHash string `param:"txHash" json:"-" validate:"required,txhash"`
}

func (h *TransactionHandler) List(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req listTransactionsReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	page, err := h.uc.List(c.Request().Context(), u, req.Page, req.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *TransactionHandler) Log(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req logTransactionReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	rec, err := h.uc.Log(c.Request().Context(), u, transaction.LogInput{
		TxHash:      req.TxHash,
		From:        req.From,
		To:          req.To,
		Amount:      req.Amount,
		BurnAmount:  req.BurnAmount,
		BlockNumber: req.BlockNumber,
		Type:        domain.Type(req.Type),
		Status:      domain.Status(req.Status),
		Metadata:    req.Metadata,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message":     "Transaction logged successfully",
		"transaction": rec,
	})
}

func (h *TransactionHandler) Get(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req txHashReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	rec, err := h.uc.Get(c.Request().Context(), u, req.TxHash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transaction": rec})
}

// CheckStatus resolves a pending record against the chain on demand.
func (h *TransactionHandler) CheckStatus(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req txHashReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	rec, err := h.reconcile.CheckStatus(c.Request().Context(), u, req.TxHash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "status": rec.Status})
}
