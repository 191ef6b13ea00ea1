package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"trailmate/models"

	"github.com/golang-jwt/jwt"
)

// GenerateToken creates a signed HS256 token for local development and tests.
func GenerateToken(secret []byte, subject, name, email string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"name":  name,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(secret []byte, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// JWTTokenVerifier accepts HS256 tokens signed with JWT_SECRET.
type JWTTokenVerifier struct {
	secret []byte
}

func NewJWTTokenVerifier(secret string) *JWTTokenVerifier {
	return &JWTTokenVerifier{secret: []byte(secret)}
}

func (v *JWTTokenVerifier) Verify(_ context.Context, tokenString string) (*models.Identity, error) {
	token, err := ValidateToken(v.secret, tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	id := &models.Identity{UserID: sub}
	id.DisplayName, _ = claims["name"].(string)
	id.Email, _ = claims["email"].(string)
	return id, nil
}
