package models

import (
	"time"
)

// User is the authenticated account owning tasks.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex:uk_users_username;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`

	Tasks []Task `gorm:"foreignKey:UserID" json:"-"`
}
