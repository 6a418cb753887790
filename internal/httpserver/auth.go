package httpserver

import (
	"log"
	"net/http"

	identitysvc "russo-backend/internal/service/identity"

	"github.com/gin-gonic/gin"
)

type verifyRequest struct {
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
	Code        string `json:"code"`
}

type loginRequest struct {
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
}

type resendRequest struct {
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

type preferencesRequest struct {
	Theme  string `json:"theme"`
	Locale string `json:"locale"`
}

func registerHandler(svc *identitysvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req identitysvc.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": u, "message": "verification code sent"})
	}
}

func verifyHandler(svc *identitysvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, token, err := svc.Verify(c.Request.Context(), req.CountryCode, req.Phone, req.Code)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
	}
}

func loginHandler(svc *identitysvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, token, err := svc.Login(c.Request.Context(), req.CountryCode, req.Phone, req.Password)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
	}
}

func resendHandler(svc *identitysvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := svc.ResendCode(c.Request.Context(), req.CountryCode, req.Phone); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
	}
}

func preferencesHandler(svc *identitysvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req preferencesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u := currentUser(c)
		if err := svc.SavePreferences(c.Request.Context(), u.ID, req.Theme, req.Locale); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "preferences saved"})
	}
}
