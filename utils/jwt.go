package utils

import (
	"errors"
	"time"

	"clinixsphere/config"

	"github.com/golang-jwt/jwt"
)

// devSecret signs tokens when JWT_SECRET is unset outside production.
const devSecret = "clinixsphere-dev-secret"

// Claims is the identity carried by an access token.
type Claims struct {
	UserID string
	Role   string
	Name   string
}

func secretKey() ([]byte, error) {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		if config.IsProduction() {
			return nil, errors.New("JWT_SECRET is not configured")
		}
		secret = devSecret
	}
	return []byte(secret), nil
}

// GenerateToken creates a signed JWT token for the given user.
// The token expires after the specified duration.
func GenerateToken(userID, role, name string, duration time.Duration) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"name": name,
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ExtractClaims validates tokenString and returns its identity claims.
func ExtractClaims(tokenString string) (*Claims, error) {
	token, err := ValidateToken(tokenString)
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
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)

	return &Claims{UserID: sub, Role: role, Name: name}, nil
}
