package http

import (
	"net/http"

	"github.com/IykeSol/iykesol-crypto-bank/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *approval.Usecase }

func NewApprovalHandler(uc *approval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type confirmApprovalReq struct {
	ID     string `param:"id" json:"-" validate:"required,hex32"`
	TxHash string `json:"txHash"       validate:"required,txhash"`
}

// ApproveLoan is the propose phase: nothing is written, the admin gets back
// the transfer to make on-chain.
func (h *ApprovalHandler) ApproveLoan(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req loanIDReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	p, err := h.uc.Approve(c.Request().Context(), u, req.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":          true,
		"requiresTransfer": true,
		"loan":             p,
	})
}

func (h *ApprovalHandler) ConfirmApproval(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(c, err)
	}
	var req confirmApprovalReq
	if er := bindValid(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	l, err := h.uc.ConfirmApproval(c.Request().Context(), u, req.ID, req.TxHash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Loan approved and tokens transferred",
		"loan":    l,
	})
}
