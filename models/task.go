package models

import (
	"time"
)

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Text      string     `gorm:"type:varchar(200);not null" json:"text"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	UserID    uint       `gorm:"not null;index:idx_tasks_user" json:"user_id"`
	CreatedAt time.Time  `json:"createdAt"`

	Tags []Tag `gorm:"many2many:task_tags" json:"tags"`
}
