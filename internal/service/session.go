package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/masterchef/backend/internal/types"
)

const (
	sessionIssuer = "masterchef"
	// SessionTTL is how long a collection token stays valid
	SessionTTL = 30 * 24 * time.Hour
)

// SessionService issues and validates the anonymous tokens that name a collection
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a new SessionService instance
func NewSessionService(jwtSecret string) *SessionService {
	return &SessionService{
		secret: []byte(jwtSecret),
		ttl:    SessionTTL,
		now:    time.Now,
	}
}

// NewSession creates a fresh collection and a token for it
func (s *SessionService) NewSession() (*types.Session, error) {
	return s.IssueToken(uuid.NewString())
}

// IssueToken signs a token for an existing collection
func (s *SessionService) IssueToken(collectionID string) (*types.Session, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   collectionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		CollectionID: collectionID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &types.Session{
		Token:        token,
		CollectionID: collectionID,
		ExpiresAt:    expiresAt,
	}, nil
}

// ValidateToken parses a token and returns its claims
func (s *SessionService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.CollectionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
