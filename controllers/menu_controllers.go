package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dugubuyan/ai-receiption/models"
	"github.com/dugubuyan/ai-receiption/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItemByID
func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMenuItem handles manual creation; bulk creation goes through UploadMenu.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var body struct {
		Name        string   `json:"name" binding:"required"`
		Price       *float64 `json:"price" binding:"required,gte=0"`
		Category    string   `json:"category" binding:"required"`
		Description *string  `json:"description"`
		Status      *int     `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		Name:        body.Name,
		Price:       *body.Price,
		Category:    body.Category,
		Description: body.Description,
		Status:      1,
	}
	if body.Status != nil {
		item.Status = *body.Status
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UploadMenu imports menu items from a CSV file with a header row of
// name,price,category,description. The whole import runs in one
// transaction so a bad row creates nothing.
func (mc *MenuController) UploadMenu(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file is required"))
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("menu-%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	defer os.Remove(tmpPath)

	f, err := os.Open(tmpPath)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	defer f.Close()

	items, err := parseMenuCSV(f)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := mc.DB.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Imported %d menu items from %s", len(items), file.Filename)
	utils.RespondMessage(c, http.StatusOK, "menu imported")
}

func parseMenuCSV(r io.Reader) ([]models.MenuItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"name", "price", "category"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv is missing required column %q", required)
		}
	}

	var items []models.MenuItem
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}

		field := func(name string) string {
			idx, ok := col[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		price, err := strconv.ParseFloat(field("price"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q on line %d", field("price"), line)
		}

		item := models.MenuItem{
			Name:     field("name"),
			Price:    price,
			Category: field("category"),
			Status:   1,
		}
		if desc := field("description"); desc != "" {
			item.Description = &desc
		}
		items = append(items, item)
	}

	return items, nil
}

// UpdateMenuItem performs a whitelisted full-field update.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var body struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price" binding:"omitempty,gte=0"`
		Category    *string  `json:"category"`
		Description *string  `json:"description"`
		Status      *int     `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Price != nil {
		item.Price = *body.Price
	}
	if body.Category != nil {
		item.Category = *body.Category
	}
	if body.Description != nil {
		item.Description = body.Description
	}
	if body.Status != nil {
		item.Status = *body.Status
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem refuses to delete items still referenced by order items,
// so historical orders keep their menu join intact.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var refs int64
	if err := mc.DB.Model(&models.OrderItem{}).Where("menu_item_id = ?", id).Count(&refs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if refs > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu item is referenced by existing orders"))
		return
	}

	result := mc.DB.Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	utils.RespondMessage(c, http.StatusOK, "menu item deleted")
}
