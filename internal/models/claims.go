package models

import "github.com/golang-jwt/jwt/v5"

// Claims represents the custom claims in our JWT tokens
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
