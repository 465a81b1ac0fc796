package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/services"
)

// PrizeHandler handles prize-distribution HTTP requests
type PrizeHandler struct {
	prizeService services.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(prizeService services.PrizeService) *PrizeHandler {
	return &PrizeHandler{prizeService: prizeService}
}

// DistributePrizes handles POST /admin/premios/distribuir. It processes
// every pending result and returns a per-result report; a result that fails
// keeps the batch going and carries its error in the report.
func (h *PrizeHandler) DistributePrizes(c *gin.Context) {
	report, err := h.prizeService.DistributePendingPrizes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetWinnersByGame handles GET /admin/jogos/:id/ganhadores
func (h *PrizeHandler) GetWinnersByGame(c *gin.Context) {
	page, limit := paginationParams(c)
	winners, err := h.prizeService.GetWinnersByGameID(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ganhadores": winners, "page": page, "limit": limit})
}
