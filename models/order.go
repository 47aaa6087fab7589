package models

import "time"

// Order.Status is free-form at the store level; the admin UI only offers
// pending, processing, completed and cancelled.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	TableNumber string      `gorm:"type:varchar(20);not null" json:"table_number"`
	Status      string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

func (Order) TableName() string { return "orders" }
