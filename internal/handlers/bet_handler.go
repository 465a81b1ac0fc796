package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/middleware"
	"github.com/sortelabs/bolao-backend/internal/services"
)

// BetHandler handles ticket-related HTTP requests
type BetHandler struct {
	betService services.BetService
}

// NewBetHandler creates a new BetHandler
func NewBetHandler(betService services.BetService) *BetHandler {
	return &BetHandler{betService: betService}
}

// PlaceBetRequest is the payload for POST /bilhetes
type PlaceBetRequest struct {
	GameSlug      string   `json:"jogo" binding:"required"`
	Numbers       []string `json:"numeros" binding:"required"`
	Amount        string   `json:"valor"`
	PaymentMethod string   `json:"metodoPagamento" binding:"required"`
	ExternalRef   string   `json:"referenciaExterna" binding:"required"`
}

// PlaceBet handles POST /bilhetes
func (h *BetHandler) PlaceBet(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var request PlaceBetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	bet, err := h.betService.PlaceBet(c.Request.Context(), &services.PlaceBetInput{
		GameSlug:      request.GameSlug,
		Numbers:       request.Numbers,
		Amount:        request.Amount,
		PaymentMethod: request.PaymentMethod,
		ExternalRef:   request.ExternalRef,
	}, claims.Subject)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bet)
}

// ListMyBets handles GET /bilhetes
func (h *BetHandler) ListMyBets(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, limit := paginationParams(c)
	bets, err := h.betService.ListCustomerBets(c.Request.Context(), claims.Subject, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bilhetes": bets, "page": page, "limit": limit})
}
