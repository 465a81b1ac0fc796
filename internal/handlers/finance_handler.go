package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/middleware"
	"github.com/sortelabs/bolao-backend/internal/services"
)

// FinanceHandler handles ledger and rateio-configuration HTTP requests
type FinanceHandler struct {
	financeService services.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// ListMyLedger handles GET /colaboradores/financeiro. The authenticated
// collaborator sees only their own entries.
func (h *FinanceHandler) ListMyLedger(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, limit := paginationParams(c)
	entries, err := h.financeService.ListCollaboratorLedger(c.Request.Context(), claims.Subject, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lancamentos": entries, "page": page, "limit": limit})
}

// SummarizeMyLedger handles GET /colaboradores/financeiro/resumo
func (h *FinanceHandler) SummarizeMyLedger(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	summary, err := h.financeService.SummarizeCollaborator(c.Request.Context(), claims.Subject)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListAdminLedger handles GET /admin/financeiro. The house ledger is shared
// by all administrators.
func (h *FinanceHandler) ListAdminLedger(c *gin.Context) {
	page, limit := paginationParams(c)
	entries, err := h.financeService.ListAdminLedger(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lancamentos": entries, "page": page, "limit": limit})
}

// SummarizeAdminLedger handles GET /admin/financeiro/resumo
func (h *FinanceHandler) SummarizeAdminLedger(c *gin.Context) {
	summary, err := h.financeService.SummarizeAdmin(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRateConfig handles GET /admin/configuracao/rateio
func (h *FinanceHandler) GetRateConfig(c *gin.Context) {
	config, err := h.financeService.GetRateConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// UpdateRateConfig handles PUT /admin/configuracao/rateio
func (h *FinanceHandler) UpdateRateConfig(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var request services.RateConfigInput
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	config, err := h.financeService.UpdateRateConfig(c.Request.Context(), &request, claims.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}
