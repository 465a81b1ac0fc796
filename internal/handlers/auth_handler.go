package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/services"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterCustomer handles POST /auth/clientes/registro
func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var request models.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	customer, err := h.authService.RegisterCustomer(c.Request.Context(), &request)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// RegisterCollaborator handles POST /auth/colaboradores/registro
func (h *AuthHandler) RegisterCollaborator(c *gin.Context) {
	var request models.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	collaborator, err := h.authService.RegisterCollaborator(c.Request.Context(), &request)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, collaborator)
}

// LoginCustomer handles POST /auth/clientes/login
func (h *AuthHandler) LoginCustomer(c *gin.Context) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	token, customer, err := h.authService.LoginCustomer(c.Request.Context(), &request)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "usuario": customer})
}

// LoginCollaborator handles POST /auth/colaboradores/login
func (h *AuthHandler) LoginCollaborator(c *gin.Context) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	token, collaborator, err := h.authService.LoginCollaborator(c.Request.Context(), &request)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "usuario": collaborator})
}

// LoginAdmin handles POST /auth/admin/login
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	token, admin, err := h.authService.LoginAdmin(c.Request.Context(), &request)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "usuario": admin})
}
