package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sortelabs/bolao-backend/api/routes"
	"github.com/sortelabs/bolao-backend/internal/config"
	"github.com/sortelabs/bolao-backend/internal/handlers"
	mongorepo "github.com/sortelabs/bolao-backend/internal/repositories/mongodb"
	"github.com/sortelabs/bolao-backend/internal/services"
	"github.com/sortelabs/bolao-backend/pkg/mailer"
	"github.com/sortelabs/bolao-backend/pkg/mongodb"
	"github.com/sortelabs/bolao-backend/pkg/paygate"
	"golang.org/x/exp/slog"
)

func main() {
	// A missing .env is fine in production, where real environment
	// variables are set by the platform.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT secret is not configured")
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	gameRepo := mongorepo.NewGameRepository(db)
	betRepo := mongorepo.NewBetRepository(db)
	resultRepo := mongorepo.NewResultRepository(db)
	winnerRepo := mongorepo.NewWinnerRepository(db)
	rateConfigRepo := mongorepo.NewRateConfigRepository(db)
	collabLedgerRepo := mongorepo.NewCollaboratorLedgerRepository(db)
	adminLedgerRepo := mongorepo.NewAdminLedgerRepository(db)
	customerRepo := mongorepo.NewCustomerRepository(db)
	collaboratorRepo := mongorepo.NewCollaboratorRepository(db)
	adminRepo := mongorepo.NewAdminUserRepository(db)
	attemptRepo := mongorepo.NewLoginAttemptRepository(db)
	personalizationRepo := mongorepo.NewPersonalizationRepository(db)

	// Outbound clients
	mail := mailer.New(cfg)
	gateway := paygate.NewClient(cfg.Payment.BaseURL, cfg.Payment.APIKey, cfg.Payment.WebhookSecret, cfg.Payment.MockGateway)

	// Services
	authService := services.NewAuthService(customerRepo, collaboratorRepo, adminRepo, attemptRepo, cfg)
	gameService := services.NewGameService(gameRepo)
	betService := services.NewBetService(betRepo, gameRepo, customerRepo, mail)
	resultService := services.NewResultService(resultRepo, gameRepo, collaboratorRepo)
	commissionService := services.NewCommissionService(collaboratorRepo, rateConfigRepo, collabLedgerRepo, adminLedgerRepo)
	prizeService := services.NewPrizeService(resultRepo, gameRepo, betRepo, winnerRepo, rateConfigRepo, commissionService)
	financeService := services.NewFinanceService(collabLedgerRepo, adminLedgerRepo, rateConfigRepo)
	personalizationService := services.NewPersonalizationService(personalizationRepo)

	// Handlers
	handlerSet := &routes.Handlers{
		Auth:            handlers.NewAuthHandler(authService),
		Game:            handlers.NewGameHandler(gameService),
		Bet:             handlers.NewBetHandler(betService),
		Result:          handlers.NewResultHandler(resultService),
		Prize:           handlers.NewPrizeHandler(prizeService),
		Finance:         handlers.NewFinanceHandler(financeService),
		Payment:         handlers.NewPaymentHandler(betService, gateway),
		Personalization: handlers.NewPersonalizationHandler(personalizationService),
	}

	router := routes.SetupRouter(cfg, handlerSet)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
