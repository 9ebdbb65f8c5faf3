package api

import (
	"alcyxob/fittrack/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter(Services{})
	uid := primitive.NewObjectID()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + signToken(t, uid, domain.RoleUser, "someone-else", time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, uid, domain.RoleUser, "fittrack", -time.Minute), http.StatusUnauthorized},
		{"valid", "Bearer " + userToken(t, uid), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestMeReturnsTokenIdentity(t *testing.T) {
	router := newTestRouter(Services{})
	uid := primitive.NewObjectID()

	w := do(t, router, http.MethodGet, "/api/v1/me", adminToken(t, uid), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]string](t, w)
	assert.Equal(t, uid.Hex(), body["userId"])
	assert.Equal(t, "admin", body["role"])
}

func TestCatalogWritesRequireAdmin(t *testing.T) {
	exercises := &stubExerciseService{}
	router := newTestRouter(Services{Exercise: exercises})
	uid := primitive.NewObjectID()
	req := ExerciseRequest{Name: "Rowing", Category: "cardio", CaloriesPerMinute: 8}

	w := do(t, router, http.MethodPost, "/api/v1/exercises", userToken(t, uid), req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, exercises.created)

	w = do(t, router, http.MethodPost, "/api/v1/exercises", adminToken(t, uid), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, exercises.created, 1)
	assert.Equal(t, "Rowing", decode[ExerciseResponse](t, w).Name)

	// Reads stay open to regular users.
	w = do(t, router, http.MethodGet, "/api/v1/exercises", userToken(t, uid), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/boom", func(c *gin.Context) {
		respondWithError(c, assert.AnError)
	})

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/boom", entries[2].ContextMap()["route"])
	assert.Contains(t, entries[2].ContextMap(), "errors")
}
