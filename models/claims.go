package models

import (
	jwt "github.com/dgrijalva/jwt-go"
)

// ArenaClaims is the JWT claim set the surrounding auth system issues.
// This service only reads it; token issuance lives elsewhere.
type ArenaClaims struct {
	AccountID     uint `json:"accountId"`
	ParticipantID uint `json:"participantId"`
	jwt.StandardClaims
}
