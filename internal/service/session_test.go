package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/masterchef/backend/internal/types"
)

func TestSessionService_NewSession(t *testing.T) {
	svc := NewSessionService("test-secret")

	session, err := svc.NewSession()
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Len(t, session.CollectionID, 36)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), session.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.CollectionID, claims.CollectionID)

	other, err := svc.NewSession()
	require.NoError(t, err)
	assert.NotEqual(t, session.CollectionID, other.CollectionID)
}

func TestSessionService_ValidateToken(t *testing.T) {
	svc := NewSessionService("test-secret")

	t.Run("wrong secret", func(t *testing.T) {
		session, err := NewSessionService("other-secret").NewSession()
		require.NoError(t, err)
		_, err = svc.ValidateToken(session.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewSessionService("test-secret")
		past.now = func() time.Time { return time.Now().Add(-SessionTTL - time.Hour) }
		session, err := past.NewSession()
		require.NoError(t, err)
		_, err = svc.ValidateToken(session.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing collection", func(t *testing.T) {
		claims := &types.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &types.TokenClaims{CollectionID: "c1", RegisteredClaims: jwt.RegisteredClaims{Issuer: sessionIssuer}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
