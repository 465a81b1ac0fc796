package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/services"
)

// GameHandler handles game-related HTTP requests
type GameHandler struct {
	gameService services.GameService
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// CreateGameRequest is the payload for POST /admin/jogos
type CreateGameRequest struct {
	Name        string `json:"nome" binding:"required"`
	Type        string `json:"tipo" binding:"required"`
	StartDate   string `json:"dataInicio" binding:"required"`
	EndDate     string `json:"dataFim" binding:"required"`
	TicketPrice string `json:"valorBilhete" binding:"required"`
	PrizePool   string `json:"premioTotal" binding:"required"`
	MinNumbers  int    `json:"minNumeros"`
	MaxNumbers  int    `json:"maxNumeros"`
	Visible     bool   `json:"visivel"`
}

// CreateGame handles POST /admin/jogos
func (h *GameHandler) CreateGame(c *gin.Context) {
	var request CreateGameRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	startDate, err := time.Parse(time.RFC3339, request.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataInicio, expected RFC3339"})
		return
	}
	endDate, err := time.Parse(time.RFC3339, request.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataFim, expected RFC3339"})
		return
	}

	game, err := h.gameService.CreateGame(c.Request.Context(), &services.CreateGameInput{
		Name:        request.Name,
		Type:        models.GameType(request.Type),
		StartDate:   startDate,
		EndDate:     endDate,
		TicketPrice: request.TicketPrice,
		PrizePool:   request.PrizePool,
		MinNumbers:  request.MinNumbers,
		MaxNumbers:  request.MaxNumbers,
		Visible:     request.Visible,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// UpdateGameRequest is the payload for PUT /admin/jogos/:id
type UpdateGameRequest struct {
	Name        string `json:"nome"`
	EndDate     string `json:"dataFim"`
	TicketPrice string `json:"valorBilhete"`
	PrizePool   string `json:"premioTotal"`
	Visible     *bool  `json:"visivel"`
}

// UpdateGame handles PUT /admin/jogos/:id
func (h *GameHandler) UpdateGame(c *gin.Context) {
	var request UpdateGameRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	input := &services.UpdateGameInput{
		Name:        request.Name,
		TicketPrice: request.TicketPrice,
		PrizePool:   request.PrizePool,
		Visible:     request.Visible,
	}
	if request.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, request.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataFim, expected RFC3339"})
			return
		}
		input.EndDate = endDate
	}

	game, err := h.gameService.UpdateGame(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetGameByID handles GET /admin/jogos/:id
func (h *GameHandler) GetGameByID(c *gin.Context) {
	game, err := h.gameService.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetGameBySlug handles GET /jogos/:slug
func (h *GameHandler) GetGameBySlug(c *gin.Context) {
	game, err := h.gameService.GetGameBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// ListGames handles GET /admin/jogos
func (h *GameHandler) ListGames(c *gin.Context) {
	page, limit := paginationParams(c)
	games, err := h.gameService.ListGames(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jogos": games, "page": page, "limit": limit})
}

// ListVisibleGames handles GET /jogos
func (h *GameHandler) ListVisibleGames(c *gin.Context) {
	page, limit := paginationParams(c)
	games, err := h.gameService.ListVisibleGames(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jogos": games, "page": page, "limit": limit})
}

// SweepGames handles POST /admin/jogos/varredura. The sweep opens games
// whose start date arrived and closes games whose end date passed.
func (h *GameHandler) SweepGames(c *gin.Context) {
	now := time.Now()
	opened, err := h.gameService.OpenUpcomingGames(c.Request.Context(), now)
	if err != nil {
		respondError(c, err)
		return
	}
	closed, err := h.gameService.CloseExpiredGames(c.Request.Context(), now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"abertos": opened, "encerrados": closed})
}

// paginationParams reads page/limit query params with sane bounds.
func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
