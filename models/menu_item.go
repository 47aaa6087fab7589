package models

import "time"

// MenuItem statuses: 1 = active, 0 = inactive.
type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"`
	Description *string   `gorm:"type:text" json:"description"`
	Status      int       `gorm:"type:tinyint;default:1" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (MenuItem) TableName() string { return "menu_items" }
