// Package auth validates the access tokens issued by the identity service.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
)

// Claims are the access token claims. UserID is the store owner acting on
// the API.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
}

// UserUUID parses the user ID claim
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// JWTService signs and validates HS256 access tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}
}

// GenerateAccessToken signs a token for userID. The identity service normally
// does this; the service uses it for tooling and tests.
func (s *JWTService) GenerateAccessToken(userID uuid.UUID, username string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiration)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID.String(),
		Username: username,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateAccessToken validates a token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	if _, err := claims.UserUUID(); err != nil {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
