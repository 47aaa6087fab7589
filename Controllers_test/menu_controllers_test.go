package Controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dugubuyan/ai-receiption/controllers"
	"github.com/dugubuyan/ai-receiption/models"
	"github.com/dugubuyan/ai-receiption/utils"
)

func setupTestDBForMenu() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Order{}, &models.OrderItem{}); err != nil {
		panic(err)
	}
	return db
}

func setupMenuRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	menuCtrl := controllers.NewMenuController(db)
	router.GET("/api/menu", menuCtrl.GetAllMenuItems)
	router.POST("/api/menu", menuCtrl.CreateMenuItem)
	router.POST("/api/menu/upload", menuCtrl.UploadMenu)
	router.GET("/api/menu/:id", menuCtrl.GetMenuItemByID)
	router.PUT("/api/menu/:id", menuCtrl.UpdateMenuItem)
	router.DELETE("/api/menu/:id", menuCtrl.DeleteMenuItem)
	return router
}

func uploadCSV(t *testing.T, router *gin.Engine, content string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "menu.csv")
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/api/menu/upload", &buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMenuCRUD(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenu()
	router := setupMenuRouter(db)

	payload := map[string]interface{}{
		"name":        "Kung Pao Chicken",
		"price":       12.5,
		"category":    "Main",
		"description": "Spicy stir-fry",
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/api/menu", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.MenuItem
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.Status)
	url := "/api/menu/" + strconv.Itoa(int(created.ID))

	// Get
	req, _ = http.NewRequest("GET", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Update
	updatePayload := map[string]interface{}{
		"name":  "Kung Pao Chicken (large)",
		"price": 15.0,
	}
	payloadBytes, _ = json.Marshal(updatePayload)
	req, _ = http.NewRequest("PUT", url, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.MenuItem
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Kung Pao Chicken (large)", updated.Name)
	assert.Equal(t, 15.0, updated.Price)
	assert.Equal(t, "Main", updated.Category)

	// Delete
	req, _ = http.NewRequest("DELETE", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenuNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenu()
	router := setupMenuRouter(db)

	for _, method := range []string{"GET", "DELETE"} {
		req, _ := http.NewRequest(method, "/api/menu/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
}

func TestMenuUploadCSV(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenu()
	router := setupMenuRouter(db)

	csvContent := "name,price,category,description\n" +
		"Spring Rolls,5.50,Starter,Crispy vegetable rolls\n" +
		"Fried Rice,8.00,Main,\n"

	w := uploadCSV(t, router, csvContent)
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.MenuItem
	db.Order("id").Find(&items)
	assert.Len(t, items, 2)
	assert.Equal(t, "Spring Rolls", items[0].Name)
	assert.Equal(t, 5.50, items[0].Price)
	assert.NotNil(t, items[0].Description)
	// blank description maps to NULL, not empty string
	assert.Nil(t, items[1].Description)
	assert.Equal(t, 1, items[1].Status)
}

func TestMenuUploadBadRowCreatesNothing(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenu()
	router := setupMenuRouter(db)

	csvContent := "name,price,category,description\n" +
		"Spring Rolls,5.50,Starter,\n" +
		"Broken Dish,not-a-price,Main,\n"

	w := uploadCSV(t, router, csvContent)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMenuUploadWithoutFile(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenu()
	router := setupMenuRouter(db)

	req, _ := http.NewRequest("POST", "/api/menu/upload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuDeleteRefusedWhileReferenced(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenu()
	router := setupMenuRouter(db)

	item := models.MenuItem{Name: "Dumplings", Price: 6.0, Category: "Starter", Status: 1}
	db.Create(&item)
	order := models.Order{TableNumber: "T1", Status: "completed", TotalAmount: 6.0}
	db.Create(&order)
	db.Create(&models.OrderItem{OrderID: order.ID, MenuItemID: item.ID, Quantity: 1, Price: 6.0})

	req, _ := http.NewRequest("DELETE", "/api/menu/"+strconv.Itoa(int(item.ID)), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
