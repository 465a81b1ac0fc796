package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/apperrors"
	"golang.org/x/exp/slog"
)

// respondError maps a service error onto an HTTP status. Dependency and
// configuration failures hide their internals behind a generic message.
func respondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var authErr *apperrors.AuthorizationError
	var notFoundErr *apperrors.NotFoundError
	var configErr *apperrors.ConfigurationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, gin.H{"error": authErr.Msg})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &configErr):
		slog.Error("configuration error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": configErr.Msg})
	default:
		slog.Error("request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondAuthError is respondError with 401 instead of 403 for authorization
// failures, for login and token endpoints where the caller holds no valid
// credential yet.
func respondAuthError(c *gin.Context, err error) {
	var authErr *apperrors.AuthorizationError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Msg})
		return
	}
	respondError(c, err)
}
