package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialworks/ediary-service/internal/services"
	"github.com/trialworks/ediary-service/internal/utils"
)

// stubAuth resolves a fixed key table.
type stubAuth struct {
	scopes map[string]*uint
}

func (s *stubAuth) ResolveAdminKey(ctx context.Context, key string) (*uint, error) {
	scope, ok := s.scopes[key]
	if !ok {
		return nil, services.ErrInvalidAdminKey
	}
	return scope, nil
}

func middlewareRouter(auth services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AdminKeyMiddleware(auth, utils.NewDevelopmentLogger()))
	router.GET("/probe", func(c *gin.Context) {
		v, _ := c.Get(contextKeyProjectScope)
		scope, _ := v.(*uint)
		if scope == nil {
			c.JSON(http.StatusOK, gin.H{"scope": "super"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"scope": *scope})
	})
	return router
}

func TestAdminKeyMiddleware(t *testing.T) {
	projectID := uint(7)
	router := middlewareRouter(&stubAuth{scopes: map[string]*uint{
		"super-key": nil,
		"pk_seven":  &projectID,
	}})

	t.Run("super key passes with nil scope", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(adminKeyHeader, "super-key")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"scope":"super"`)
	})

	t.Run("project key passes with its project id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(adminKeyHeader, "pk_seven")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"scope":7`)
	})

	t.Run("missing key is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(adminKeyHeader, "pk_bogus")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("preflight passes without a key", func(t *testing.T) {
		router := middlewareRouter(&stubAuth{scopes: map[string]*uint{}})
		router.OPTIONS("/probe", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/probe", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
