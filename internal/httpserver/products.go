package httpserver

import (
	"log"
	"net/http"
	"strconv"

	catalogsvc "russo-backend/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc *catalogsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.List(c.Request.Context(), catalogsvc.ListInput{
			Category: c.Query("category"),
			Gender:   c.Query("gender"),
			MinPrice: c.Query("minPrice"),
			MaxPrice: c.Query("maxPrice"),
			Sort:     c.Query("sort"),
			Page:     intQuery(c, "page"),
			Limit:    intQuery(c, "limit"),
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func searchProductsHandler(svc *catalogsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.Search(c.Request.Context(), c.Query("q"), intQuery(c, "page"), intQuery(c, "limit"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func getProductHandler(svc *catalogsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("productId"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func categoriesHandler(svc *catalogsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func createProductHandler(svc *catalogsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalogsvc.CreateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		p, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product": p})
	}
}

func attachModelHandler(svc *catalogsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ModelURL string `json:"model_url"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := svc.AttachModel(c.Request.Context(), c.Param("productId"), req.ModelURL); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "model attached"})
	}
}

func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
