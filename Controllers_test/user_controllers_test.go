package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dugubuyan/ai-receiption/controllers"
	"github.com/dugubuyan/ai-receiption/middlewares"
	"github.com/dugubuyan/ai-receiption/models"
	"github.com/dugubuyan/ai-receiption/utils"
)

func setupTestDBForUsers() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		panic(err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/api/auth/register", userCtrl.Register)
	router.POST("/api/auth/login", userCtrl.Login)
	protected := router.Group("/api/users")
	protected.Use(middlewares.AuthMiddleware())
	protected.GET("/profile", userCtrl.GetProfile)
	return router
}

func TestRegisterLoginProfile(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db)

	payload, _ := json.Marshal(map[string]string{
		"name":     "Admin",
		"email":    "admin@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "secret123")

	payload, _ = json.Marshal(map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	req, _ = http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	token := loginResp["token"]
	assert.NotEmpty(t, token)

	req, _ = http.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "admin@example.com", user.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db)

	payload, _ := json.Marshal(map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db)

	req, _ := http.NewRequest("GET", "/api/users/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
