package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/masterchef/backend/internal/logger"
	"github.com/pageza/masterchef/backend/internal/service"
)

// SessionHandler hands out collection tokens
type SessionHandler struct {
	sessions service.ISessionService
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(sessions service.ISessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// RegisterRoutes registers the session routes
func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sessions", h.CreateSession)
}

// CreateSession starts a new, empty collection
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.NewSession()
	if err != nil {
		logger.Error("failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":         session.Token,
		"collection_id": session.CollectionID,
		"expires_at":    session.ExpiresAt,
	})
}
