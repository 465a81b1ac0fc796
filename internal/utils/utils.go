package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sortelabs/bolao-backend/internal/config"
	"github.com/sortelabs/bolao-backend/internal/models"
)

// GenerateJWT generates a signed bearer token for an authenticated account.
func GenerateJWT(subjectID string, email string, role models.Role, cfg *config.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subjectID,
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
		"iat":   time.Now().Unix(),
	})

	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateJWT parses and validates a bearer token and returns its claims.
func ValidateJWT(tokenString string, cfg *config.Config) (*models.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	role := models.Role(roleStr)
	if sub == "" || !role.Valid() {
		return nil, errors.New("invalid token claims")
	}

	return &models.TokenClaims{Subject: sub, Email: email, Role: role}, nil
}

// GenerateRandomString generates a URL-safe random string of the specified length
func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b)[:length], nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a game name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CountMatches counts how many of the bet's chosen numbers appear in the
// drawn set. Values are compared as trimmed strings, not numerically, to
// match the stored representation ("07" and "7" are different numbers).
func CountMatches(chosen, drawn []string) int {
	drawnSet := make(map[string]struct{}, len(drawn))
	for _, n := range drawn {
		drawnSet[strings.TrimSpace(n)] = struct{}{}
	}

	score := 0
	for _, n := range chosen {
		if _, ok := drawnSet[strings.TrimSpace(n)]; ok {
			score++
		}
	}
	return score
}

// ClassifyTier maps a score onto exactly one prize tier.
func ClassifyTier(score int) string {
	switch {
	case score >= 10:
		return models.TierTenPoints
	case score == 9:
		return models.TierNinePoints
	default:
		return models.TierFewerPoints
	}
}
