package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DeliveryReceipt records materials received into a project's warehouse.
// Receipts are created locked; unlocking is an explicit admin action.
type DeliveryReceipt struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	ProjectID    string         `json:"project_id" gorm:"size:36;not null;index"`
	DRNumber     string         `json:"dr_number" gorm:"size:20;not null;uniqueIndex"`
	Supplier     string         `json:"supplier" gorm:"size:128;not null"`
	ReceivedDate time.Time      `json:"received_date" gorm:"type:date;not null"`
	ReceivedTime *string        `json:"received_time,omitempty" gorm:"size:8"`
	Warehouseman string         `json:"warehouseman" gorm:"size:128;not null"`
	Locked       bool           `json:"locked" gorm:"not null;default:true"`
	Photos       datatypes.JSON `json:"photos,omitempty" gorm:"type:jsonb"`
	CreatedBy    string         `json:"created_by" gorm:"size:36;not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	Items []DeliveryItem `json:"items,omitempty" gorm:"foreignKey:ReceiptID"`
}

func (DeliveryReceipt) TableName() string {
	return "delivery_receipts"
}

// DeliveryItem is one line of a delivery receipt. WBS is optional; when
// present it ties the line to a cost/scope bucket of the project plan.
type DeliveryItem struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	ReceiptID   string  `json:"receipt_id" gorm:"size:36;not null;index"`
	Description string  `json:"description" gorm:"size:256;not null"`
	WBS         *string `json:"wbs,omitempty" gorm:"size:64"`
	Quantity    float64 `json:"quantity" gorm:"type:decimal(14,4);not null"`
	POQuantity  float64 `json:"po_quantity" gorm:"type:decimal(14,4);not null;default:0"`
	Unit        string  `json:"unit" gorm:"size:20;not null"`
	SortOrder   int     `json:"sort_order" gorm:"not null;default:0"`
}

func (DeliveryItem) TableName() string {
	return "delivery_items"
}
