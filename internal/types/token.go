package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a session token
type TokenClaims struct {
	jwt.RegisteredClaims
	CollectionID string `json:"collection_id"`
}

// Session is returned to a client when it starts a new collection
type Session struct {
	Token        string    `json:"token"`
	CollectionID string    `json:"collection_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}
