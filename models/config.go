package models

import "time"

// Config is a single admin-editable key/value row. Writes go through an
// upsert keyed by ConfigKey, so there is never more than one row per key.
type Config struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ConfigKey   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"config_key"`
	ConfigValue string    `gorm:"type:text;not null" json:"config_value"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Config) TableName() string { return "configs" }
