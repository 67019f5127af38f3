package http

import (
	"net/http"

	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/metrics"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct{ uc *metrics.Usecase }

func NewAdminHandler(uc *metrics.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

func (h *AdminHandler) Metrics(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	snap, err := h.uc.Get(c.Request().Context(), u)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// Users lists the newest accounts.
func (h *AdminHandler) Users(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	users, err := h.uc.Users(c.Request().Context(), u)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}
