package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/masterchef/backend/internal/logger"
	"github.com/pageza/masterchef/backend/internal/middleware"
	"github.com/pageza/masterchef/backend/internal/service"
	"github.com/pageza/masterchef/backend/internal/types"
)

// ExtractFailedMessage is the single message shown for any failed extraction
const ExtractFailedMessage = "Failed to extract recipe. The URL might be invalid, or the page may not contain a recipe. Please try another one."

// ExtractHandler runs extractions and manages the resulting drafts
type ExtractHandler struct {
	extractor service.IExtractorService
	drafts    service.DraftStore
	recipes   service.IRecipeService
	limiter   *middleware.RateLimiter
}

// NewExtractHandler creates a new ExtractHandler. limiter may be nil.
func NewExtractHandler(extractor service.IExtractorService, drafts service.DraftStore, recipes service.IRecipeService, limiter *middleware.RateLimiter) *ExtractHandler {
	return &ExtractHandler{
		extractor: extractor,
		drafts:    drafts,
		recipes:   recipes,
		limiter:   limiter,
	}
}

// RegisterRoutes registers extraction and draft routes on an authenticated group
func (h *ExtractHandler) RegisterRoutes(router *gin.RouterGroup) {
	if h.limiter != nil {
		router.POST("/extract", h.limiter.RateLimitMiddleware(), h.Extract)
	} else {
		router.POST("/extract", h.Extract)
	}

	drafts := router.Group("/drafts")
	{
		drafts.GET("/:id", h.GetDraft)
		drafts.DELETE("/:id", h.DeleteDraft)
		drafts.POST("/:id/save", h.SaveDraft)
	}
}

// Extract turns a URL or ingredient query into a draft recipe
func (h *ExtractHandler) Extract(c *gin.Context) {
	collectionID, _ := middleware.CollectionID(c)

	var req types.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrEmptyInput.Error()})
		return
	}

	recipe, err := h.extractor.Extract(c.Request.Context(), collectionID, req.Input())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"recipe": recipe})
	case errors.Is(err, service.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExtractionInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "An extraction is already in progress."})
	default:
		logger.Error("extraction failed",
			zap.String("collection_id", collectionID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": ExtractFailedMessage})
	}
}

// GetDraft returns the current unsaved recipe
func (h *ExtractHandler) GetDraft(c *gin.Context) {
	collectionID, _ := middleware.CollectionID(c)

	draft, err := h.drafts.GetDraft(c.Request.Context(), collectionID, c.Param("id"))
	if errors.Is(err, service.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}
	if err != nil {
		logger.Error("failed to load draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": draft})
}

// DeleteDraft discards a draft. Unknown drafts are not an error.
func (h *ExtractHandler) DeleteDraft(c *gin.Context) {
	collectionID, _ := middleware.CollectionID(c)
	id := c.Param("id")

	if err := h.drafts.DeleteDraft(c.Request.Context(), collectionID, id); err != nil {
		logger.Error("failed to delete draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to discard draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

// SaveDraft moves a draft into the collection
func (h *ExtractHandler) SaveDraft(c *gin.Context) {
	ctx := c.Request.Context()
	collectionID, _ := middleware.CollectionID(c)
	id := c.Param("id")

	draft, err := h.drafts.GetDraft(ctx, collectionID, id)
	if errors.Is(err, service.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}
	if err != nil {
		logger.Error("failed to load draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}

	saved, created, err := h.recipes.SaveRecipe(ctx, collectionID, draft)
	if err != nil {
		logger.Error("failed to save draft", zap.String("draft_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	if err := h.drafts.DeleteDraft(ctx, collectionID, id); err != nil {
		logger.Warn("failed to discard saved draft", zap.String("draft_id", id), zap.Error(err))
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"recipe": saved, "created": created})
}
