package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/config"
	"github.com/sortelabs/bolao-backend/internal/handlers"
	"github.com/sortelabs/bolao-backend/internal/middleware"
	"github.com/sortelabs/bolao-backend/internal/models"
)

// Handlers groups every handler the router wires up.
type Handlers struct {
	Auth            *handlers.AuthHandler
	Game            *handlers.GameHandler
	Bet             *handlers.BetHandler
	Result          *handlers.ResultHandler
	Prize           *handlers.PrizeHandler
	Finance         *handlers.FinanceHandler
	Payment         *handlers.PaymentHandler
	Personalization *handlers.PersonalizationHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/clientes/registro", h.Auth.RegisterCustomer)
			auth.POST("/clientes/login", h.Auth.LoginCustomer)
			auth.POST("/colaboradores/registro", h.Auth.RegisterCollaborator)
			auth.POST("/colaboradores/login", h.Auth.LoginCollaborator)
			auth.POST("/admin/login", h.Auth.LoginAdmin)
		}

		public.GET("/jogos", h.Game.ListVisibleGames)
		public.GET("/jogos/:slug", h.Game.GetGameBySlug)
		public.GET("/personalizacao/:chave", h.Personalization.GetPersonalization)

		// The gateway authenticates with its HMAC signature, not a token
		public.POST("/webhooks/pagamento", h.Payment.HandleWebhook)
	}

	// Customer routes
	customer := router.Group("/api/v1")
	customer.Use(middleware.JWTAuthMiddleware(cfg), middleware.RequireRole(models.RoleCliente))
	{
		customer.POST("/bilhetes", h.Bet.PlaceBet)
		customer.GET("/bilhetes", h.Bet.ListMyBets)
	}

	// Collaborator routes
	collaborator := router.Group("/api/v1/colaboradores")
	collaborator.Use(middleware.JWTAuthMiddleware(cfg), middleware.RequireRole(models.RoleColaborador))
	{
		collaborator.GET("/financeiro", h.Finance.ListMyLedger)
		collaborator.GET("/financeiro/resumo", h.Finance.SummarizeMyLedger)
	}

	// Result submission is open to collaborators and administrators; the
	// service checks the collaborator's game association.
	results := router.Group("/api/v1")
	results.Use(middleware.JWTAuthMiddleware(cfg), middleware.RequireRole(
		models.RoleColaborador, models.RoleAdmin, models.RoleSuperAdmin))
	{
		results.POST("/resultados", h.Result.IngestResult)
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.RequireAdministrative())
	{
		jogos := admin.Group("/jogos")
		{
			jogos.POST("", h.Game.CreateGame)
			jogos.GET("", h.Game.ListGames)
			jogos.GET("/:id", h.Game.GetGameByID)
			jogos.PUT("/:id", h.Game.UpdateGame)
			jogos.POST("/varredura", h.Game.SweepGames)
			jogos.GET("/:id/ganhadores", h.Prize.GetWinnersByGame)
		}

		admin.GET("/resultados/pendentes", h.Result.ListPendingResults)
		admin.GET("/resultados/:id", h.Result.GetResultByID)
		admin.POST("/premios/distribuir", h.Prize.DistributePrizes)

		admin.GET("/financeiro", h.Finance.ListAdminLedger)
		admin.GET("/financeiro/resumo", h.Finance.SummarizeAdminLedger)
		admin.GET("/configuracao/rateio", h.Finance.GetRateConfig)
		admin.PUT("/configuracao/rateio", h.Finance.UpdateRateConfig)

		admin.PUT("/personalizacao/:chave", h.Personalization.UpsertPersonalization)
	}

	return router
}
