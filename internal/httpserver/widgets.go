package httpserver

import (
	"log"
	"net/http"

	"russo-backend/internal/domain"
	widgetrepo "russo-backend/internal/repository/widget"

	"github.com/gin-gonic/gin"
)

type widgetRequest struct {
	Title     string                 `json:"title"`
	Kind      string                 `json:"kind"`
	Settings  map[string]interface{} `json:"settings"`
	SortOrder int                    `json:"sort_order"`
	Enabled   *bool                  `json:"enabled"`
}

func listWidgetsHandler(repo widgetrepo.Repository, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		widgets, err := repo.ListEnabled(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if widgets == nil {
			widgets = []domain.Widget{}
		}
		c.JSON(http.StatusOK, gin.H{"widgets": widgets})
	}
}

func createWidgetHandler(repo widgetrepo.Repository, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req widgetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Title == "" || req.Kind == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and kind required"})
			return
		}
		enabled := true
		if req.Enabled != nil {
			enabled = *req.Enabled
		}
		w, err := repo.Create(c.Request.Context(), domain.Widget{
			Title:     req.Title,
			Kind:      req.Kind,
			Settings:  req.Settings,
			SortOrder: req.SortOrder,
			Enabled:   enabled,
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"widget": w})
	}
}

func updateWidgetHandler(repo widgetrepo.Repository, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req widgetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		enabled := true
		if req.Enabled != nil {
			enabled = *req.Enabled
		}
		w, err := repo.Update(c.Request.Context(), domain.Widget{
			ID:        c.Param("widgetId"),
			Title:     req.Title,
			Kind:      req.Kind,
			Settings:  req.Settings,
			SortOrder: req.SortOrder,
			Enabled:   enabled,
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"widget": w})
	}
}

func deleteWidgetHandler(repo widgetrepo.Repository, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Delete(c.Request.Context(), c.Param("widgetId")); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "widget deleted"})
	}
}
