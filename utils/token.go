package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenLifespan  = 12 * time.Hour
	refreshTokenLifespan = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken signs an access token carrying the user's identity.
func GenerateToken(userID int64, email string, role string) (string, error) {
	return signToken(userID, email, role, "access", accessTokenLifespan)
}

// GenerateRefreshToken signs a longer-lived token accepted only by the
// refresh endpoint.
func GenerateRefreshToken(userID int64, email string, role string) (string, error) {
	return signToken(userID, email, role, "refresh", refreshTokenLifespan)
}

func signToken(userID int64, email, role, use string, lifespan time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"use":     use,
		"iat":     now.Unix(),
		"exp":     now.Add(lifespan).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// VerifyToken parses and validates a signed token, returning its claims.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefreshToken accepts only tokens minted for refresh use.
func VerifyRefreshToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if use, _ := claims["use"].(string); use != "refresh" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
