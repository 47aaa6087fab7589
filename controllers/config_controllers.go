package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dugubuyan/ai-receiption/models"
	"github.com/dugubuyan/ai-receiption/utils"
)

type ConfigController struct {
	DB *gorm.DB
}

func NewConfigController(db *gorm.DB) *ConfigController {
	return &ConfigController{DB: db}
}

// GetAllConfigs
func (cc *ConfigController) GetAllConfigs(c *gin.Context) {
	var configs []models.Config
	if err := cc.DB.Find(&configs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

// GetConfigByKey
func (cc *ConfigController) GetConfigByKey(c *gin.Context) {
	key := c.Param("key")

	var config models.Config
	if err := cc.DB.Where("config_key = ?", key).First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("config not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// UpsertConfig inserts the key if absent, otherwise overwrites its value.
// Repeating the same write leaves exactly one row per key.
func (cc *ConfigController) UpsertConfig(c *gin.Context) {
	key := c.Param("key")

	var body struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var config models.Config
	err := cc.DB.Where("config_key = ?", key).First(&config).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		config = models.Config{ConfigKey: key, ConfigValue: body.Value}
		if err := cc.DB.Create(&config).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	default:
		config.ConfigValue = body.Value
		if err := cc.DB.Save(&config).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	c.JSON(http.StatusOK, config)
}

// DeleteConfig
func (cc *ConfigController) DeleteConfig(c *gin.Context) {
	key := c.Param("key")

	result := cc.DB.Where("config_key = ?", key).Delete(&models.Config{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("config not found"))
		return
	}

	utils.RespondMessage(c, http.StatusOK, "config deleted")
}
