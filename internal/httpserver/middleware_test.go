package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"russo-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

type stubAuthenticator struct {
	user      *domain.User
	err       error
	lastToken string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	s.lastToken = token
	return s.user, s.err
}

func authedRouter(auth authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(authMiddleware(auth))
	router.GET("/test", func(c *gin.Context) {
		u := currentUser(c)
		if u == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": u.ID})
	})
	return router
}

func TestAuthMiddleware_Success(t *testing.T) {
	auth := &stubAuthenticator{user: &domain.User{ID: "u1", Role: domain.RoleCustomer}}
	router := authedRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if auth.lastToken != "tok-123" {
		t.Fatalf("authenticated with token %q", auth.lastToken)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := authedRouter(&stubAuthenticator{user: &domain.User{ID: "u1"}})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := authedRouter(&stubAuthenticator{user: &domain.User{ID: "u1"}})

	for _, header := range []string{"tok-123", "Bearer ", "Basic dXNlcg=="} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected status 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := authedRouter(&stubAuthenticator{err: errors.New("invalid token")})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAdminMiddleware(t *testing.T) {
	cases := []struct {
		name string
		user *domain.User
		want int
	}{
		{"admin passes", &domain.User{ID: "u1", Role: domain.RoleAdmin}, http.StatusOK},
		{"customer rejected", &domain.User{ID: "u2", Role: domain.RoleCustomer}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(authMiddleware(&stubAuthenticator{user: tc.user}), adminMiddleware())
			router.GET("/admin/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/test", nil)
			req.Header.Set("Authorization", "Bearer tok-123")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
