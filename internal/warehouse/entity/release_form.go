package entity

import (
	"time"
)

// ReleaseForm records materials issued out of the warehouse to site use.
// Same locked-by-default lifecycle as delivery receipts; only the authoring
// warehouseman may edit, and only while unlocked.
type ReleaseForm struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	ProjectID     string    `json:"project_id" gorm:"size:36;not null;index"`
	ReleaseNumber string    `json:"release_number" gorm:"size:20;not null;uniqueIndex"`
	ReceivedBy    string    `json:"received_by" gorm:"size:128;not null"`
	ReleaseDate   time.Time `json:"release_date" gorm:"type:date;not null"`
	Warehouseman  *string   `json:"warehouseman,omitempty" gorm:"size:128"`
	Purpose       *string   `json:"purpose,omitempty" gorm:"size:256"`
	Locked        bool      `json:"locked" gorm:"not null;default:true"`
	Attachment    *string   `json:"attachment,omitempty" gorm:"size:512"`
	CreatedBy     string    `json:"created_by" gorm:"size:36;not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Items []ReleaseItem `json:"items,omitempty" gorm:"foreignKey:FormID"`
}

func (ReleaseForm) TableName() string {
	return "release_forms"
}

// ReleaseItem is one released line. Edits replace the whole item list.
type ReleaseItem struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	FormID      string  `json:"form_id" gorm:"size:36;not null;index"`
	Description string  `json:"description" gorm:"size:256;not null"`
	WBS         *string `json:"wbs,omitempty" gorm:"size:64"`
	Quantity    float64 `json:"quantity" gorm:"type:decimal(14,4);not null"`
	Unit        string  `json:"unit" gorm:"size:20;not null"`
	SortOrder   int     `json:"sort_order" gorm:"not null;default:0"`
}

func (ReleaseItem) TableName() string {
	return "release_items"
}
