package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenDuration = 7 * 24 * time.Hour

type JWTService struct {
	secretKey     string
	tokenDuration time.Duration
	now           func() time.Time
}

// NewJWTService signs HS256 tokens valid for ttl (7 days when ttl <= 0).
func NewJWTService(secretKey string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = defaultTokenDuration
	}
	return &JWTService{
		secretKey:     secretKey,
		tokenDuration: ttl,
		now:           time.Now,
	}
}

// GenerateToken returns a signed token and its expiry.
func (s *JWTService) GenerateToken(claims *TokenClaims) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenDuration)

	jwtClaims := jwt.MapClaims{
		"admin_id": claims.AdminID,
		"email":    claims.Email,
		"exp":      expiresAt.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken checks signature, algorithm and expiry and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	adminID, ok := claims["admin_id"].(string)
	if !ok || adminID == "" {
		return nil, fmt.Errorf("invalid admin_id in token")
	}
	email, _ := claims["email"].(string)

	return &TokenClaims{AdminID: adminID, Email: email}, nil
}
