package models

import (
	"time"
)

// User mirrors an identity-provider subject; ID is the external identity id.
type User struct {
	ID        string `gorm:"type:varchar(255);primaryKey"`
	Email     string `gorm:"type:varchar(255);index"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Role      string `gorm:"type:varchar(20);not null;default:'CUSTOMER'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
