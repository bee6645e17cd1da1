package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/masterchef/backend/internal/logger"
	"github.com/pageza/masterchef/backend/internal/middleware"
	"github.com/pageza/masterchef/backend/internal/model"
	"github.com/pageza/masterchef/backend/internal/service"
	"github.com/pageza/masterchef/backend/internal/types"
)

type RecipeHandler struct {
	recipes  service.IRecipeService
	exporter service.IExportService
}

// NewRecipeHandler creates a RecipeHandler. exporter may be nil.
func NewRecipeHandler(recipes service.IRecipeService, exporter service.IExportService) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		exporter: exporter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		if h.exporter != nil {
			recipes.POST("/export", h.ExportRecipes)
		}
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	collectionID, _ := middleware.CollectionID(c)

	var (
		recipes []*model.Recipe
		err     error
	)
	if search := c.Query("q"); search != "" {
		recipes, err = h.recipes.SearchRecipes(c.Request.Context(), collectionID, search)
	} else {
		recipes, err = h.recipes.ListRecipes(c.Request.Context(), collectionID)
	}
	if err != nil {
		logger.Error("failed to fetch recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	collectionID, _ := middleware.CollectionID(c)

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), collectionID, c.Param("id"))
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		logger.Error("failed to fetch recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	collectionID, _ := middleware.CollectionID(c)

	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, created, err := h.recipes.SaveRecipe(c.Request.Context(), collectionID, req.Recipe())
	if errors.Is(err, service.ErrNoRecipe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("failed to save recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"recipe": saved, "created": created})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	collectionID, _ := middleware.CollectionID(c)
	id := c.Param("id")

	deleted, err := h.recipes.DeleteRecipe(c.Request.Context(), collectionID, id)
	if err != nil {
		logger.Error("failed to delete recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": deleted})
}

func (h *RecipeHandler) ExportRecipes(c *gin.Context) {
	collectionID, _ := middleware.CollectionID(c)

	result, err := h.exporter.Export(c.Request.Context(), collectionID)
	if err != nil {
		logger.Error("failed to export recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export recipes"})
		return
	}

	c.JSON(http.StatusOK, result)
}
