package auth

import (
	"os"

	"arenaserver/models"

	jwt "github.com/dgrijalva/jwt-go"
)

// JwtKey verifies tokens issued by the surrounding auth service. This
// server never issues tokens itself.
var JwtKey = loadJwtKey()

func loadJwtKey() []byte {
	if key := os.Getenv("ARENA_JWT_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("development_only_key")
}

// ParseClaims validates a token string and returns its claims.
func ParseClaims(tokenString string) (*models.ArenaClaims, error) {
	claims := &models.ArenaClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("token is not valid", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
