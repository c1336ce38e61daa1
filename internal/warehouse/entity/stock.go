package entity

// StockItem is one row of the reconciled stock-status table. It is derived
// on every read and never persisted.
type StockItem struct {
	WBS         *string `json:"wbs"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Resource    *string `json:"resource"`
	IPOWQty     float64 `json:"ipow_qty"`
	Delivered   float64 `json:"delivered"`
	Utilized    float64 `json:"utilized"`
	Balance     float64 `json:"balance"`
	Variance    float64 `json:"variance"`
	POQty       float64 `json:"po_qty"`
	Undelivered float64 `json:"undelivered"`
	TotalCost   float64 `json:"total_cost"`
}
