package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentdesk/internal/auth/repo/persistent"
	"rentdesk/internal/auth/usecase"
	"rentdesk/pkg/jwt"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/middleware"
	"rentdesk/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key"

func setupAuthTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))

	log := logger.New()
	jwtService := jwt.NewService(testSecret)
	uc := usecase.NewAuthUseCase(persistent.NewUserRepository(db), jwtService, log)
	handler := NewAuthHandler(uc, log)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	router.GET("/auth/me", middleware.AuthMiddleware(jwtService), handler.Me)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}, token string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func registerBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"email":    email,
		"name":     "Alex Morgan",
		"password": "secret123",
		"role":     "landlord",
	}
}

func TestRegister_ReturnsTokenAndHidesPassword(t *testing.T) {
	router := setupAuthTest(t)

	w := postJSON(router, "/auth/register", registerBody("alex@example.com"), "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token string                 `json:"token"`
			User  map[string]interface{} `json:"user"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "landlord", resp.Data.User["role"])
	assert.NotContains(t, resp.Data.User, "password")
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	router := setupAuthTest(t)

	w := postJSON(router, "/auth/register", registerBody("alex@example.com"), "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/auth/register", registerBody("alex@example.com"), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	router := setupAuthTest(t)

	body := registerBody("alex@example.com")
	body["role"] = "admin"
	w := postJSON(router, "/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	router := setupAuthTest(t)
	postJSON(router, "/auth/register", registerBody("alex@example.com"), "")

	w := postJSON(router, "/auth/login", map[string]interface{}{
		"email":    "alex@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/auth/login", map[string]interface{}{
		"email":    "alex@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown email gets the same answer as a wrong password
	w = postJSON(router, "/auth/login", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	router := setupAuthTest(t)

	w := postJSON(router, "/auth/register", registerBody("alex@example.com"), "")
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	req, _ := http.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Data map[string]interface{} `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &me)
	assert.Equal(t, "alex@example.com", me.Data["email"])
}
