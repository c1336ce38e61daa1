package entity

import (
	"time"
)

// Project statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusOnHold    = "on_hold"
)

// Project is the construction project the warehouse records hang off.
type Project struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	Name      string     `json:"name" gorm:"size:256;not null"`
	Client    string     `json:"client" gorm:"size:256"`
	Location  string     `json:"location" gorm:"size:256"`
	Status    string     `json:"status" gorm:"size:20;not null;default:active"`
	StartDate *time.Time `json:"start_date,omitempty" gorm:"type:date"`
	EndDate   *time.Time `json:"end_date,omitempty" gorm:"type:date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
