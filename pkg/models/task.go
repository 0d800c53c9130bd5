package model

import (
	"time"
)

type Task struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"column:due_date" json:"dueDate"`
	Priority    Priority   `gorm:"type:text;not null;default:medium" json:"priority"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (Task) TableName() string {
	return "tasks"
}

// NewTask is the insertable projection of Task: everything except the
// system-assigned ID and CreatedAt.
type NewTask struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}
