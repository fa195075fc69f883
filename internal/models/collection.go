package models

import (
	"time"

	"gorm.io/datatypes"
)

// Collection is the SQL row backing one whole collection document.
type Collection struct {
	Name      string         `gorm:"primaryKey;size:64"`
	Document  datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}
