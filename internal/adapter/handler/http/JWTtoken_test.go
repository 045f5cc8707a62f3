package http_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"

	handler "github.com/sm8ta/webike_fleet_analytics_nikita/internal/adapter/handler/http"
)

func TestVerifyTokenRoundTrip(t *testing.T) {
	svc := handler.NewJWTTokenService(testSecret, noopLogger{})

	id := uuid.New()
	userID := uuid.New()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      id.String(),
		"user_id": userID.String(),
		"role":    "admin",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	payload, err := svc.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, id, payload.ID)
	assert.Equal(t, userID, payload.UserID)
	assert.Equal(t, domain.Admin, payload.Role)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	svc := handler.NewJWTTokenService(testSecret, noopLogger{})

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      uuid.NewString(),
		"user_id": uuid.NewString(),
		"role":    "appuser",
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(signed)
	assert.ErrorIs(t, err, handler.ErrInvalidToken)
}

func TestVerifyTokenRejectsForeignSigningMethod(t *testing.T) {
	svc := handler.NewJWTTokenService(testSecret, noopLogger{})

	// Same secret, different HMAC variant.
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id":      uuid.NewString(),
		"user_id": uuid.NewString(),
		"role":    "appuser",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.VerifyToken(signed)
	assert.ErrorIs(t, err, handler.ErrInvalidToken)
}

func TestVerifyTokenRejectsBadClaims(t *testing.T) {
	svc := handler.NewJWTTokenService(testSecret, noopLogger{})

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing id", jwt.MapClaims{"user_id": uuid.NewString(), "role": "appuser"}},
		{"malformed user_id", jwt.MapClaims{"id": uuid.NewString(), "user_id": "nope", "role": "appuser"}},
		{"missing role", jwt.MapClaims{"id": uuid.NewString(), "user_id": uuid.NewString()}},
		{"unknown role", jwt.MapClaims{"id": uuid.NewString(), "user_id": uuid.NewString(), "role": "superuser"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc.claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = svc.VerifyToken(signed)
			assert.ErrorIs(t, err, handler.ErrInvalidClaims)
		})
	}
}
