package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "middleware-test-secret"

// stubAuthService resolves a fixed role for any user.
type stubAuthService struct {
	role domain.Role
}

func (s *stubAuthService) Register(context.Context, string, string, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *service.Session, error) {
	return "", nil, nil
}

func (s *stubAuthService) ResolveSession(context.Context, string) (*service.Session, error) {
	return nil, nil
}

func (s *stubAuthService) ResolveRole(context.Context, string) domain.Role {
	return s.role
}

func (s *stubAuthService) GetJWTSecret() string { return testSecret }

func signToken(t *testing.T, userID string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := struct {
		UserID string `json:"uid"`
		jwt.RegisteredClaims
	}{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedRouter(role domain.Role, allowed ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/")
	group.Use(AuthMiddleware(testSecret), RoleResolverMiddleware(&stubAuthService{role: role}))
	if len(allowed) > 0 {
		group.Use(RoleMiddleware(allowed...))
	}
	group.GET("/secure", func(c *gin.Context) {
		userID, _ := getUserIDFromContext(c)
		resolved, _ := getUserRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": resolved})
	})
	return router
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := protectedRouter(domain.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := protectedRouter(domain.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Token abcdef")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router := protectedRouter(domain.RoleUser)
	token := signToken(t, primitive.NewObjectID().Hex(), -time.Minute)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_ValidTokenResolvesRole(t *testing.T) {
	router := protectedRouter(domain.RoleTrainer)
	userID := primitive.NewObjectID().Hex()
	token := signToken(t, userID, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)
	assert.Contains(t, w.Body.String(), string(domain.RoleTrainer))
}

func TestRoleMiddleware(t *testing.T) {
	token := signToken(t, primitive.NewObjectID().Hex(), time.Hour)

	tests := []struct {
		name     string
		resolved domain.Role
		allowed  []domain.Role
		expected int
	}{
		{"trainer allowed", domain.RoleTrainer, []domain.Role{domain.RoleTrainer, domain.RoleAdmin}, http.StatusOK},
		{"admin allowed", domain.RoleAdmin, []domain.Role{domain.RoleTrainer, domain.RoleAdmin}, http.StatusOK},
		{"baseline user forbidden", domain.RoleUser, []domain.Role{domain.RoleTrainer, domain.RoleAdmin}, http.StatusForbidden},
		{"admin only", domain.RoleTrainer, []domain.Role{domain.RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := protectedRouter(tt.resolved, tt.allowed...)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}
