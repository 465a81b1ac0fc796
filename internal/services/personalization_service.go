package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// PersonalizationService serves and updates the public site's layout documents
type PersonalizationService interface {
	Get(ctx context.Context, key string) (*models.Personalization, error)
	Upsert(ctx context.Context, key string, values map[string]string, updatedBy string) error
}

// Compile-time check to ensure PersonalizationServiceImpl implements PersonalizationService
var _ PersonalizationService = (*PersonalizationServiceImpl)(nil)

// PersonalizationServiceImpl handles personalization business logic
type PersonalizationServiceImpl struct {
	repo repositories.PersonalizationRepository
}

// NewPersonalizationService creates a new PersonalizationServiceImpl
func NewPersonalizationService(repo repositories.PersonalizationRepository) *PersonalizationServiceImpl {
	return &PersonalizationServiceImpl{repo: repo}
}

// Get returns a layout document by key.
func (s *PersonalizationServiceImpl) Get(ctx context.Context, key string) (*models.Personalization, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.Validation("chave is required")
	}
	doc, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("personalization", key)
		}
		return nil, apperrors.Dependency("find personalization", err)
	}
	return doc, nil
}

// Upsert replaces the values of a layout document, creating it on first write.
func (s *PersonalizationServiceImpl) Upsert(ctx context.Context, key string, values map[string]string, updatedBy string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperrors.Validation("chave is required")
	}
	if len(values) == 0 {
		return apperrors.Validation("valores must not be empty")
	}
	if err := s.repo.UpsertByKey(ctx, key, values, updatedBy); err != nil {
		return apperrors.Dependency("upsert personalization", err)
	}
	return nil
}
