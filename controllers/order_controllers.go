package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dugubuyan/ai-receiption/models"
	"github.com/dugubuyan/ai-receiption/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// errUnknownMenuItem marks order-creation failures caused by the request
// referencing a menu item that does not exist.
var errUnknownMenuItem = errors.New("unknown menu item")

// CreateOrder creates an order and its items as one unit. Every requested
// menu item is resolved first; an unresolvable id fails the whole request
// and the transaction guarantees no partial order is left behind. Item
// prices are snapshotted from the menu at this moment.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,gte=1"`
	}
	var body struct {
		TableNumber string    `json:"table_number" binding:"required"`
		Items       []itemReq `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		menuItems := make([]models.MenuItem, len(body.Items))
		var total float64
		for i, item := range body.Items {
			if err := tx.First(&menuItems[i], item.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("menu item %d not found: %w", item.MenuItemID, errUnknownMenuItem)
				}
				return err
			}
			total += menuItems[i].Price * float64(item.Quantity)
		}

		order = models.Order{
			TableNumber: body.TableNumber,
			Status:      "pending",
			TotalAmount: total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i, item := range body.Items {
			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.MenuItemID,
				Quantity:   item.Quantity,
				Price:      menuItems[i].Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errUnknownMenuItem) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var created models.Order
	if err := oc.DB.Preload("OrderItems.MenuItem").First(&created, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetAllOrders lists orders newest first, optionally filtered by status
// and an inclusive creation-date range.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems.MenuItem").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query, err := applyDateRange(query, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var order models.Order
	if err := oc.DB.Preload("OrderItems.MenuItem").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus sets the status field. Any status string is accepted;
// the admin UI constrains choices to the four known values.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order.Status = body.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// OrderStat is one aggregation bucket of GetOrderStats.
type OrderStat struct {
	Date       string  `json:"date"`
	OrderCount int64   `json:"order_count"`
	TotalSales float64 `json:"total_sales"`
}

// GetOrderStats groups orders by the calendar date of created_at and
// returns count and revenue per day, newest day first.
func (oc *OrderController) GetOrderStats(c *gin.Context) {
	query := oc.DB.Model(&models.Order{}).
		// CAST keeps the bucket a plain string on both mysql and sqlite
		Select("CAST(DATE(created_at) AS CHAR) AS date, COUNT(id) AS order_count, COALESCE(SUM(total_amount), 0) AS total_sales").
		Group("DATE(created_at)").
		Order("DATE(created_at) DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query, err := applyDateRange(query, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var stats []OrderStat
	if err := query.Scan(&stats).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// applyDateRange filters created_at by YYYY-MM-DD bounds. Both bounds are
// inclusive: the end date covers the whole calendar day.
func applyDateRange(query *gorm.DB, startDate, endDate string) (*gorm.DB, error) {
	if startDate != "" {
		start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", startDate)
		}
		query = query.Where("created_at >= ?", start)
	}
	if endDate != "" {
		end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", endDate)
		}
		query = query.Where("created_at < ?", end.AddDate(0, 0, 1))
	}
	return query, nil
}
