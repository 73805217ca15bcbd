package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "unikhata-test",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateAccessToken(userID, "fayyez")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	got, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, "fayyez", claims.Username)
	assert.Equal(t, "unikhata-test", claims.Issuer)
}

func TestJWTService_ValidateErrors(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	sign := func(claims *Claims, method jwt.SigningMethod, key any) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	base := func() *Claims {
		now := time.Now()
		return &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "unikhata-test",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			UserID: userID.String(),
		}
	}

	expired := base()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	future := base()
	future.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
	noUser := base()
	noUser.UserID = ""
	badUser := base()
	badUser.UserID = "not-a-uuid"
	otherIssuer := base()
	otherIssuer.Issuer = "someone-else"
	secret := []byte("test-secret-key-at-least-32-chars")

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"garbage", "not.a.jwt", ErrInvalidToken},
		{"wrong secret", sign(base(), jwt.SigningMethodHS256, []byte("another-secret-key-of-32-chars!!")), ErrInvalidToken},
		{"wrong algorithm", sign(base(), jwt.SigningMethodHS512, secret), ErrInvalidToken},
		{"expired", sign(expired, jwt.SigningMethodHS256, secret), ErrExpiredToken},
		{"not yet valid", sign(future, jwt.SigningMethodHS256, secret), ErrTokenNotYetValid},
		{"missing user", sign(noUser, jwt.SigningMethodHS256, secret), ErrMissingUserID},
		{"malformed user", sign(badUser, jwt.SigningMethodHS256, secret), ErrInvalidClaims},
		{"other issuer", sign(otherIssuer, jwt.SigningMethodHS256, secret), ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_NoIssuerConfigured(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", AccessTokenExpiration: time.Minute})
	token, _, err := svc.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	assert.NoError(t, err)
}
