package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/middleware"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/services"
)

// ResultHandler handles draw-result HTTP requests
type ResultHandler struct {
	resultService services.ResultService
}

// NewResultHandler creates a new ResultHandler
func NewResultHandler(resultService services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// IngestResultRequest is the payload for POST /resultados
type IngestResultRequest struct {
	GameID     string   `json:"jogoId"`
	GameSlug   string   `json:"jogo"`
	Numbers    []string `json:"numeros"`
	Dezena     string   `json:"dezena"`
	Horario    string   `json:"horario"`
	DrawDate   string   `json:"dataSorteio" binding:"required"`
	PrizeTotal string   `json:"premioTotal" binding:"required"`
}

// IngestResult handles POST /resultados
func (h *ResultHandler) IngestResult(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var request IngestResultRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	drawDate, err := time.Parse(time.RFC3339, request.DrawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataSorteio, expected RFC3339"})
		return
	}

	result, err := h.resultService.Ingest(c.Request.Context(), &services.IngestResultInput{
		GameID:     request.GameID,
		GameSlug:   request.GameSlug,
		Numbers:    request.Numbers,
		Dezena:     request.Dezena,
		Horario:    request.Horario,
		DrawDate:   drawDate,
		PrizeTotal: request.PrizeTotal,
	}, claims)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetResultByID handles GET /admin/resultados/:id
func (h *ResultHandler) GetResultByID(c *gin.Context) {
	result, err := h.resultService.GetResultByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListPendingResults handles GET /admin/resultados/pendentes
func (h *ResultHandler) ListPendingResults(c *gin.Context) {
	page, limit := paginationParams(c)
	results, err := h.resultService.ListByStatus(c.Request.Context(), models.ResultStatusPending, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resultados": results, "page": page, "limit": limit})
}
