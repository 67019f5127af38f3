package http

import (
	"net/http"

	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/auth"
	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/balance"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc       *auth.Usecase
	balances *balance.Usecase
}

func NewAuthHandler(uc *auth.Usecase, balances *balance.Usecase) *AuthHandler {
	return &AuthHandler{uc: uc, balances: balances}
}

type registerReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,strongpw"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type walletProofReq struct {
	WalletAddress string `json:"walletAddress" validate:"required,ethaddr"`
	Message       string `json:"message"       validate:"required"`
	Signature     string `json:"signature"     validate:"required"`
}

func (r walletProofReq) proof() auth.WalletProof {
	return auth.WalletProof{Address: r.WalletAddress, Message: r.Message, Signature: r.Signature}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	res, err := h.uc.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	res, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) WalletAuth(c echo.Context) error {
	var req walletProofReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	res, err := h.uc.WalletLogin(c.Request().Context(), req.proof())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) LinkWallet(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req walletProofReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	me, err := h.uc.LinkWallet(c.Request().Context(), u, req.proof())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":       "Wallet linked successfully",
		"walletAddress": me.Wallet(),
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	me, err := h.uc.Me(c.Request().Context(), u)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": me})
}

// Dashboard is the account plus its token balance, "0" without a wallet.
func (h *AuthHandler) Dashboard(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	me, err := h.uc.Me(c.Request().Context(), u)
	if err != nil {
		return respondError(c, err)
	}
	tokenBalance := "0"
	if w := me.Wallet(); w != "" && h.balances != nil {
		b, err := h.balances.Get(c.Request().Context(), me, w)
		if err != nil {
			return respondError(c, err)
		}
		tokenBalance = b.Balance
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user":         me,
		"tokenBalance": tokenBalance,
	})
}
