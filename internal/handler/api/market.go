package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	reqdto "escrow-market/internal/handler/dto/request"
	resdto "escrow-market/internal/handler/dto/response"
	"escrow-market/internal/handler/httperr"
	"escrow-market/internal/handler/middleware"
	"escrow-market/internal/usecase/commands"
	"escrow-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	marketCommands commands.MarketCommands
	marketQueries  queries.MarketQueries
}

func NewMarketHandler(marketCommands commands.MarketCommands, marketQueries queries.MarketQueries) *MarketHandler {
	return &MarketHandler{
		marketCommands: marketCommands,
		marketQueries:  marketQueries,
	}
}

// @Summary Create sell offer
// @Description List an owned asset for sale; custody moves into escrow
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSellOfferRequest true "Sell offer"
// @Success 201 {object} resdto.CreateOfferResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /market/sell-offers [post]
func (h *MarketHandler) CreateSellOffer(c *gin.Context) {
	caller, ok := middleware.GetTraderID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateSellOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.marketCommands.CreateSellOffer(c.Request.Context(), caller, commands.CreateSellOfferParams{
		Collection: req.Collection,
		AssetID:    req.AssetID,
		Price:      req.Price,
		Deadline:   req.Deadline,
	})
	if err != nil {
		writeMarketError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateOfferResponse{OfferID: result.OfferID})
}

// @Summary Accept sell offer
// @Description Settle a sell offer by paying exactly its price
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sell offer ID"
// @Param request body reqdto.AcceptSellOfferRequest true "Payment"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /market/sell-offers/{id}/accept [post]
func (h *MarketHandler) AcceptSellOffer(c *gin.Context) {
	caller, ok := middleware.GetTraderID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := offerIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return
	}

	var req reqdto.AcceptSellOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.marketCommands.AcceptSellOffer(c.Request.Context(), caller, id, req.Payment); err != nil {
		writeMarketError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel sell offer
// @Description Withdraw an own sell offer once its deadline has passed
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sell offer ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /market/sell-offers/{id}/cancel [post]
func (h *MarketHandler) CancelSellOffer(c *gin.Context) {
	caller, ok := middleware.GetTraderID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := offerIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return
	}

	if err := h.marketCommands.CancelSellOffer(c.Request.Context(), caller, id); err != nil {
		writeMarketError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Create buy offer
// @Description Commit payment into escrow for an asset, speculative on any future owner accepting
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBuyOfferRequest true "Buy offer"
// @Success 201 {object} resdto.CreateOfferResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /market/buy-offers [post]
func (h *MarketHandler) CreateBuyOffer(c *gin.Context) {
	caller, ok := middleware.GetTraderID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBuyOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.marketCommands.CreateBuyOffer(c.Request.Context(), caller, commands.CreateBuyOfferParams{
		Collection: req.Collection,
		AssetID:    req.AssetID,
		Payment:    req.Payment,
		Deadline:   req.Deadline,
	})
	if err != nil {
		writeMarketError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateOfferResponse{OfferID: result.OfferID})
}

// @Summary Accept buy offer
// @Description Current owner of the asset settles a buy offer; escrowed payment is delivered to the owner
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param id path int true "Buy offer ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /market/buy-offers/{id}/accept [post]
func (h *MarketHandler) AcceptBuyOffer(c *gin.Context) {
	caller, ok := middleware.GetTraderID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := offerIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return
	}

	if err := h.marketCommands.AcceptBuyOffer(c.Request.Context(), caller, id); err != nil {
		writeMarketError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel buy offer
// @Description Withdraw an own buy offer once its deadline has passed; escrowed payment is refunded
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param id path int true "Buy offer ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /market/buy-offers/{id}/cancel [post]
func (h *MarketHandler) CancelBuyOffer(c *gin.Context) {
	caller, ok := middleware.GetTraderID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := offerIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return
	}

	if err := h.marketCommands.CancelBuyOffer(c.Request.Context(), caller, id); err != nil {
		writeMarketError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get sell offer
// @Tags market
// @Produce json
// @Param id path int true "Sell offer ID"
// @Success 200 {object} resdto.OfferResponse
// @Failure 404 {object} httperr.Response
// @Router /market/sell-offers/{id} [get]
func (h *MarketHandler) GetSellOffer(c *gin.Context) {
	h.getOffer(c, h.marketQueries.GetSellOffer)
}

// @Summary Get buy offer
// @Tags market
// @Produce json
// @Param id path int true "Buy offer ID"
// @Success 200 {object} resdto.OfferResponse
// @Failure 404 {object} httperr.Response
// @Router /market/buy-offers/{id} [get]
func (h *MarketHandler) GetBuyOffer(c *gin.Context) {
	h.getOffer(c, h.marketQueries.GetBuyOffer)
}

// @Summary Get offer counters
// @Tags market
// @Produce json
// @Success 200 {object} resdto.CountersResponse
// @Router /market/counters [get]
func (h *MarketHandler) GetCounters(c *gin.Context) {
	counters, err := h.marketQueries.Counters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromCountersView(counters))
}

func (h *MarketHandler) getOffer(c *gin.Context, get func(ctx context.Context, id uint64) (*queries.OfferView, error)) {
	id, err := offerIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return
	}

	view, err := get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrOfferNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOfferView(view))
}

func offerIDParam(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func writeMarketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOfferNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
	case errors.Is(err, commands.ErrNotOwner):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Caller lacks the required ownership", nil)
	case errors.Is(err, commands.ErrInvalidDeadline):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Deadline must be in the future", nil)
	case errors.Is(err, commands.ErrInvalidPrice):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Price must be positive", nil)
	case errors.Is(err, commands.ErrWrongAmount):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Payment does not match the offer price", nil)
	case errors.Is(err, commands.ErrOfferEnded):
		httperr.AbortWithError(c, http.StatusConflict, err, "Offer already ended or expired", nil)
	case errors.Is(err, commands.ErrOfferNotExpired):
		httperr.AbortWithError(c, http.StatusConflict, err, "Offer deadline has not passed yet", nil)
	case errors.Is(err, commands.ErrPaymentTransfer):
		httperr.AbortWithError(c, http.StatusConflict, err, "Payment transfer failed", nil)
	case errors.Is(err, commands.ErrAssetTransfer):
		httperr.AbortWithError(c, http.StatusConflict, err, "Asset transfer failed", nil)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
