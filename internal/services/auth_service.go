package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/config"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"github.com/sortelabs/bolao-backend/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

const referralCodeLength = 8

// AuthService handles account registration and authentication
type AuthService interface {
	RegisterCustomer(ctx context.Context, req *models.RegisterRequest) (*models.Customer, error)
	RegisterCollaborator(ctx context.Context, req *models.RegisterRequest) (*models.Collaborator, error)
	LoginCustomer(ctx context.Context, req *models.LoginRequest) (string, *models.Customer, error)
	LoginCollaborator(ctx context.Context, req *models.LoginRequest) (string, *models.Collaborator, error)
	LoginAdmin(ctx context.Context, req *models.LoginRequest) (string, *models.AdminUser, error)
}

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles authentication business logic
type AuthServiceImpl struct {
	customerRepo     repositories.CustomerRepository
	collaboratorRepo repositories.CollaboratorRepository
	adminRepo        repositories.AdminUserRepository
	attemptRepo      repositories.LoginAttemptRepository
	cfg              *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(
	customerRepo repositories.CustomerRepository,
	collaboratorRepo repositories.CollaboratorRepository,
	adminRepo repositories.AdminUserRepository,
	attemptRepo repositories.LoginAttemptRepository,
	cfg *config.Config,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		customerRepo:     customerRepo,
		collaboratorRepo: collaboratorRepo,
		adminRepo:        adminRepo,
		attemptRepo:      attemptRepo,
		cfg:              cfg,
	}
}

// RegisterCustomer creates a customer account. A referral code, when given,
// binds the customer to the collaborator that owns it; every winning bet of
// the customer then generates commission for that collaborator.
func (s *AuthServiceImpl) RegisterCustomer(ctx context.Context, req *models.RegisterRequest) (*models.Customer, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.customerRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.Validation("email already registered")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Dependency("check email", err)
	}

	customer := &models.Customer{
		Name:   strings.TrimSpace(req.Name),
		Email:  email,
		Phone:  strings.TrimSpace(req.Phone),
		Active: true,
	}

	if code := strings.TrimSpace(req.ReferralCode); code != "" {
		collaborator, err := s.collaboratorRepo.FindByReferralCode(ctx, code)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperrors.Validation("unknown referral code")
			}
			return nil, apperrors.Dependency("resolve referral code", err)
		}
		customer.CollaboratorID = collaborator.ID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Dependency("hash password", err)
	}
	customer.Password = string(hashed)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperrors.Dependency("create customer", err)
	}
	slog.Info("customer registered", "customerId", customer.ID.Hex())
	return customer, nil
}

// RegisterCollaborator creates a collaborator account with a fresh referral
// code. Game associations are granted later by an admin.
func (s *AuthServiceImpl) RegisterCollaborator(ctx context.Context, req *models.RegisterRequest) (*models.Collaborator, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.collaboratorRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.Validation("email already registered")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Dependency("check email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Dependency("hash password", err)
	}

	code, err := utils.GenerateRandomString(referralCodeLength)
	if err != nil {
		return nil, apperrors.Dependency("generate referral code", err)
	}

	collaborator := &models.Collaborator{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Password:     string(hashed),
		ReferralCode: code,
		Active:       true,
	}
	if err := s.collaboratorRepo.Create(ctx, collaborator); err != nil {
		return nil, apperrors.Dependency("create collaborator", err)
	}
	slog.Info("collaborator registered", "collaboratorId", collaborator.ID.Hex())
	return collaborator, nil
}

// LoginCustomer authenticates a customer and issues a bearer token.
func (s *AuthServiceImpl) LoginCustomer(ctx context.Context, req *models.LoginRequest) (string, *models.Customer, error) {
	email := normalizeEmail(req.Email)
	if err := s.checkLockout(ctx, email); err != nil {
		return "", nil, err
	}

	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, s.failLogin(ctx, email, err)
	}
	if !customer.Active {
		return "", nil, apperrors.Authorization("account disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.Password)); err != nil {
		return "", nil, s.failLogin(ctx, email, err)
	}

	s.resetAttempts(ctx, email)
	token, err := utils.GenerateJWT(customer.ID.Hex(), customer.Email, models.RoleCliente, s.cfg)
	if err != nil {
		return "", nil, apperrors.Dependency("sign token", err)
	}
	return token, customer, nil
}

// LoginCollaborator authenticates a collaborator and issues a bearer token.
func (s *AuthServiceImpl) LoginCollaborator(ctx context.Context, req *models.LoginRequest) (string, *models.Collaborator, error) {
	email := normalizeEmail(req.Email)
	if err := s.checkLockout(ctx, email); err != nil {
		return "", nil, err
	}

	collaborator, err := s.collaboratorRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, s.failLogin(ctx, email, err)
	}
	if !collaborator.Active {
		return "", nil, apperrors.Authorization("account disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(collaborator.Password), []byte(req.Password)); err != nil {
		return "", nil, s.failLogin(ctx, email, err)
	}

	s.resetAttempts(ctx, email)
	token, err := utils.GenerateJWT(collaborator.ID.Hex(), collaborator.Email, models.RoleColaborador, s.cfg)
	if err != nil {
		return "", nil, apperrors.Dependency("sign token", err)
	}
	return token, collaborator, nil
}

// LoginAdmin authenticates a back-office account and issues a bearer token.
// The token carries whichever role the account holds, admin or superadmin.
func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, req *models.LoginRequest) (string, *models.AdminUser, error) {
	email := normalizeEmail(req.Email)
	if err := s.checkLockout(ctx, email); err != nil {
		return "", nil, err
	}

	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, s.failLogin(ctx, email, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return "", nil, s.failLogin(ctx, email, err)
	}

	s.resetAttempts(ctx, email)
	token, err := utils.GenerateJWT(admin.ID.Hex(), admin.Email, admin.Role, s.cfg)
	if err != nil {
		return "", nil, apperrors.Dependency("sign token", err)
	}
	return token, admin, nil
}

// checkLockout refuses login while the shared failure counter is over the
// limit and still inside the lockout window.
func (s *AuthServiceImpl) checkLockout(ctx context.Context, email string) error {
	attempt, err := s.attemptRepo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return apperrors.Dependency("check login attempts", err)
	}
	if attempt.Failures < s.cfg.Auth.MaxLoginFailures {
		return nil
	}
	window := time.Duration(s.cfg.Auth.LockoutMinutes) * time.Minute
	if time.Since(attempt.LastFail) < window {
		return apperrors.Authorization("too many failed attempts, try again later")
	}
	return nil
}

// failLogin records the failure and returns a uniform credential error so a
// caller cannot distinguish an unknown email from a wrong password.
func (s *AuthServiceImpl) failLogin(ctx context.Context, email string, cause error) error {
	if err := s.attemptRepo.RecordFailure(ctx, email, time.Now()); err != nil {
		slog.Warn("failed to record login failure", "error", err, "email", email)
	}
	slog.Info("login rejected", "email", email, "cause", cause)
	return apperrors.Authorization("invalid credentials")
}

func (s *AuthServiceImpl) resetAttempts(ctx context.Context, email string) {
	if err := s.attemptRepo.Reset(ctx, email); err != nil {
		slog.Warn("failed to reset login attempts", "error", err, "email", email)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
