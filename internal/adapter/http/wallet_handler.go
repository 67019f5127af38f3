package http

import (
	"net/http"

	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/balance"

	"github.com/labstack/echo/v4"
)

type WalletHandler struct{ uc *balance.Usecase }

func NewWalletHandler(uc *balance.Usecase) *WalletHandler { return &WalletHandler{uc: uc} }

type balanceReq struct {
	Address string `param:"address" json:"-" validate:"required,ethaddr"`
}

func (h *WalletHandler) Balance(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req balanceReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	b, err := h.uc.Get(c.Request().Context(), u, req.Address)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"balance":     b.Balance,
		"address":     b.WalletAddress,
		"lastUpdated": b.UpdatedAt,
	})
}
