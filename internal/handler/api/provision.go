package api

import (
	"net/http"

	reqdto "escrow-market/internal/handler/dto/request"
	resdto "escrow-market/internal/handler/dto/response"
	"escrow-market/internal/handler/httperr"
	"escrow-market/internal/handler/middleware"
	"escrow-market/internal/infra"
	"escrow-market/internal/infra/ledger"
	"escrow-market/internal/infra/registry"
	"escrow-market/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// ProvisionHandler exposes the admin faucets (minting, deposits) and the
// per-trader escrow approval every seller needs before listing.
type ProvisionHandler struct {
	registry       *registry.AssetRegistry
	paymentLedger  *ledger.PaymentLedger
	marketCommands commands.MarketCommands
}

func NewProvisionHandler(reg *registry.AssetRegistry, paymentLedger *ledger.PaymentLedger, marketCommands commands.MarketCommands) *ProvisionHandler {
	return &ProvisionHandler{
		registry:       reg,
		paymentLedger:  paymentLedger,
		marketCommands: marketCommands,
	}
}

// @Summary Mint asset
// @Description Record a new asset under an owner (admin only)
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.MintAssetRequest true "Asset"
// @Success 201 "Created"
// @Failure 409 {object} httperr.Response
// @Router /registry/assets [post]
func (h *ProvisionHandler) MintAsset(c *gin.Context) {
	var req reqdto.MintAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.registry.Mint(req.Collection, req.AssetID, req.Owner); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			httperr.AbortWithError(c, http.StatusConflict, err, "Asset already minted", nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Status(http.StatusCreated)
}

// @Summary Approve escrow engine
// @Description Authorize (or revoke) the escrow engine to move the caller's assets
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApproveEngineRequest true "Approval"
// @Success 204 "No Content"
// @Router /registry/approvals [post]
func (h *ProvisionHandler) ApproveEngine(c *gin.Context) {
	caller, ok := middleware.GetTraderID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.ApproveEngineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	h.registry.SetApproval(caller, h.marketCommands.EscrowID(), req.IsApproved())
	c.Status(http.StatusNoContent)
}

// @Summary Deposit funds
// @Description Credit a trader's ledger account (admin only)
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DepositRequest true "Deposit"
// @Success 204 "No Content"
// @Router /ledger/deposits [post]
func (h *ProvisionHandler) Deposit(c *gin.Context) {
	var req reqdto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	h.paymentLedger.Deposit(req.To, req.Amount)
	c.Status(http.StatusNoContent)
}

// @Summary Own balance
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BalanceResponse
// @Router /ledger/balance [get]
func (h *ProvisionHandler) Balance(c *gin.Context) {
	caller, ok := middleware.GetTraderID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.BalanceResponse{Balance: h.paymentLedger.BalanceOf(caller)})
}
