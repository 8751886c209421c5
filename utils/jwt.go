package utils

import (
	"errors"
	"time"

	"poojaseva/config"

	"github.com/golang-jwt/jwt"
)

var ErrNoSigningKey = errors.New("JWT_SECRET is not configured")

// TokenClaims are the identity fields carried by an access token.
type TokenClaims struct {
	Subject string
	Email   string
	Role    string
}

func signingKey() ([]byte, error) {
	if config.AppConfig.JWTSecret == "" {
		return nil, ErrNoSigningKey
	}
	return []byte(config.AppConfig.JWTSecret), nil
}

// GenerateToken creates a signed HS256 token for the subject that expires after duration.
func GenerateToken(claims TokenClaims, duration time.Duration) (string, error) {
	key, err := signingKey()
	if err != nil {
		return "", err
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.Subject,
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	})
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := signingKey()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ExtractClaims validates the token and returns its identity claims.
func ExtractClaims(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	sub, ok := mc["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	return &TokenClaims{Subject: sub, Email: email, Role: role}, nil
}
