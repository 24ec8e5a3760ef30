package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdicto/internal/config"
	"verdicto/internal/domain"
	"verdicto/internal/service"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "verdicto"}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func accessClaims(userID uuid.UUID) *service.Claims {
	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "verdicto",
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{"access"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Email:  "counsel@test.com",
	}
}

func TestAuthService_ValidateToken_Valid(t *testing.T) {
	svc := service.NewAuthService(testJWT)
	userID := uuid.New()

	claims, err := svc.ValidateToken(signToken(t, testJWT.Secret, jwt.SigningMethodHS256, accessClaims(userID)))

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "counsel@test.com", claims.Email)
}

func TestAuthService_ValidateToken_SubjectOnly(t *testing.T) {
	svc := service.NewAuthService(testJWT)
	userID := uuid.New()
	c := accessClaims(userID)
	c.UserID = uuid.Nil

	claims, err := svc.ValidateToken(signToken(t, testJWT.Secret, jwt.SigningMethodHS256, c))

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestAuthService_ValidateToken_Rejections(t *testing.T) {
	svc := service.NewAuthService(testJWT)
	userID := uuid.New()

	expired := accessClaims(userID)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongAudience := accessClaims(userID)
	wrongAudience.Audience = jwt.ClaimStrings{"refresh"}

	wrongIssuer := accessClaims(userID)
	wrongIssuer.Issuer = "someone-else"

	noUser := accessClaims(userID)
	noUser.UserID = uuid.Nil
	noUser.Subject = "not-a-uuid"

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", signToken(t, "other-secret", jwt.SigningMethodHS256, accessClaims(userID))},
		{"expired", signToken(t, testJWT.Secret, jwt.SigningMethodHS256, expired)},
		{"wrong audience", signToken(t, testJWT.Secret, jwt.SigningMethodHS256, wrongAudience)},
		{"wrong issuer", signToken(t, testJWT.Secret, jwt.SigningMethodHS256, wrongIssuer)},
		{"no user", signToken(t, testJWT.Secret, jwt.SigningMethodHS256, noUser)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestAuthService_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	svc := service.NewAuthService(testJWT)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, accessClaims(uuid.New())).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
