package entity

import (
	"time"
)

// IPOWItem is one planned line of a project's Individual Program of Work.
// Rows are produced by the planning import and read-only to the warehouse
// module; there is one "latest" row per (WBS, description) per project.
type IPOWItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ProjectID   string    `json:"project_id" gorm:"size:36;not null;index"`
	WBS         *string   `json:"wbs,omitempty" gorm:"size:64"`
	Description string    `json:"description" gorm:"size:256;not null"`
	Unit        string    `json:"unit" gorm:"size:20;not null"`
	Resource    *string   `json:"resource,omitempty" gorm:"size:128"`
	PlannedQty  float64   `json:"planned_qty" gorm:"type:decimal(14,4);not null;default:0"`
	TotalCost   float64   `json:"total_cost" gorm:"type:decimal(14,2);not null;default:0"`
	SortOrder   int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (IPOWItem) TableName() string {
	return "ipow_items"
}
