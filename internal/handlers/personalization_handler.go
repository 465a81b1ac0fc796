package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/middleware"
	"github.com/sortelabs/bolao-backend/internal/services"
)

// PersonalizationHandler handles site-layout HTTP requests
type PersonalizationHandler struct {
	personalizationService services.PersonalizationService
}

// NewPersonalizationHandler creates a new PersonalizationHandler
func NewPersonalizationHandler(personalizationService services.PersonalizationService) *PersonalizationHandler {
	return &PersonalizationHandler{personalizationService: personalizationService}
}

// GetPersonalization handles GET /personalizacao/:chave. Public, consumed by
// the storefront before any login.
func (h *PersonalizationHandler) GetPersonalization(c *gin.Context) {
	doc, err := h.personalizationService.Get(c.Request.Context(), c.Param("chave"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// UpsertPersonalizationRequest is the payload for PUT /admin/personalizacao/:chave
type UpsertPersonalizationRequest struct {
	Values map[string]string `json:"valores" binding:"required"`
}

// UpsertPersonalization handles PUT /admin/personalizacao/:chave
func (h *PersonalizationHandler) UpsertPersonalization(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var request UpsertPersonalizationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.personalizationService.Upsert(c.Request.Context(), c.Param("chave"), request.Values, claims.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
