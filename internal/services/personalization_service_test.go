package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalization_UpsertThenGet(t *testing.T) {
	service := NewPersonalizationService(newFakePersonalizationRepo())

	values := map[string]string{"logoUrl": "https://cdn.example.com/logo.png", "corPrimaria": "#1a8754"}
	require.NoError(t, service.Upsert(context.Background(), "home", values, "admin-1"))

	doc, err := service.Get(context.Background(), "home")
	require.NoError(t, err)
	assert.Equal(t, "home", doc.Key)
	assert.Equal(t, values, doc.Values)
	assert.Equal(t, "admin-1", doc.UpdatedBy)
}

func TestPersonalization_GetUnknownKey(t *testing.T) {
	service := NewPersonalizationService(newFakePersonalizationRepo())

	_, err := service.Get(context.Background(), "rodape")
	require.Error(t, err)
	var notFoundErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
}

func TestPersonalization_Validation(t *testing.T) {
	service := NewPersonalizationService(newFakePersonalizationRepo())

	var validationErr *apperrors.ValidationError

	err := service.Upsert(context.Background(), "  ", map[string]string{"a": "b"}, "admin-1")
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))

	err = service.Upsert(context.Background(), "home", nil, "admin-1")
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))

	_, err = service.Get(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))
}
