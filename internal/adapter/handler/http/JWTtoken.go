package http

import (
	"errors"
	"fmt"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// JWTTokenService verifies HS256 access tokens issued by the auth
// service and exposes their payload to the middleware.
type JWTTokenService struct {
	secretKey []byte
	logger    ports.LoggerPort
}

func NewJWTTokenService(secretKey string, logger ports.LoggerPort) *JWTTokenService {
	return &JWTTokenService{
		secretKey: []byte(secretKey),
		logger:    logger,
	}
}

// VerifyToken parses the token, rejecting any signing method other
// than HS256, and maps the id/user_id/role claims onto a TokenPayload.
func (j *JWTTokenService) VerifyToken(token string) (*domain.TokenPayload, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (interface{}, error) { return j.secretKey, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		j.logger.Error("Failed to parse jwt", map[string]interface{}{
			"error":  err.Error(),
			"method": "VerifyToken",
		})
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		j.logger.Error("Failed claims from token", map[string]interface{}{
			"method": "VerifyToken",
		})
		return nil, ErrInvalidClaims
	}

	id, err := uuidClaim(claims, "id")
	if err != nil {
		return nil, err
	}
	userID, err := uuidClaim(claims, "user_id")
	if err != nil {
		return nil, err
	}

	roleClaimed, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: role", ErrInvalidClaims)
	}
	role := domain.UserRole(roleClaimed)
	if role != domain.Admin && role != domain.AppUser {
		j.logger.Warn("Invalid role in token", map[string]interface{}{
			"role":   roleClaimed,
			"method": "VerifyToken",
		})
		return nil, fmt.Errorf("%w: role %q", ErrInvalidClaims, roleClaimed)
	}

	return &domain.TokenPayload{
		ID:     id,
		UserID: userID,
		Role:   role,
	}, nil
}

func uuidClaim(claims jwt.MapClaims, name string) (uuid.UUID, error) {
	raw, ok := claims[name].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidClaims, name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidClaims, name)
	}
	return id, nil
}
