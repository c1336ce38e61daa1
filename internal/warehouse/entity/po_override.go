package entity

import (
	"time"
)

// POOverride is a manually entered purchase-order target quantity for one
// (project, WBS, description) key. At most one row may exist per key; the
// unique index backs the upsert's ON CONFLICT clause. A missing WBS is
// stored as the empty string so the uniqueness also holds for keyless rows
// (Postgres would otherwise treat NULLs as distinct).
type POOverride struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	ProjectID       string    `json:"project_id" gorm:"size:36;not null;uniqueIndex:ux_po_overrides_key,priority:1"`
	WBS             string    `json:"wbs" gorm:"size:64;not null;default:'';uniqueIndex:ux_po_overrides_key,priority:2"`
	Description     string    `json:"description" gorm:"size:256;not null"`
	DescriptionNorm string    `json:"-" gorm:"size:256;not null;uniqueIndex:ux_po_overrides_key,priority:3"`
	POQuantity      float64   `json:"po_quantity" gorm:"type:decimal(14,4);not null;default:0"`
	UpdatedBy       string    `json:"updated_by" gorm:"size:36;not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (POOverride) TableName() string {
	return "po_overrides"
}
