package httpserver

import (
	"log"
	"net/http"

	statsrepo "russo-backend/internal/repository/stats"

	"github.com/gin-gonic/gin"
)

func dashboardHandler(repo statsrepo.Repository, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		dashboard, err := repo.Dashboard(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dashboard)
	}
}
