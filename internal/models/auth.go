package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims are the claims of a bearer token accepted by the student endpoint.
type TokenClaims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}
