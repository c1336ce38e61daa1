package handler

import (
	"net/http"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/service"
	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	svc *service.StockService
}

func NewStockHandler(svc *service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// Get GET /projects/:id/stock
// The reconciled stock-status table for the project: one row per planned
// line, or per observed item when the project has no plan.
func (h *StockHandler) Get(c *gin.Context) {
	items, err := h.svc.GetStockItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, gin.H{"items": items, "total": len(items)})
}

type setPORequest struct {
	WBS         *string  `json:"wbs"`
	Description string   `json:"description" binding:"required"`
	POQuantity  *float64 `json:"po_quantity" binding:"required"`
}

// SetPO PUT /projects/:id/stock/po
// Upserts the manual PO target for one item key and returns the recomputed
// row.
func (h *StockHandler) SetPO(c *gin.Context) {
	var req setPORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	userID := c.GetString("user_id")

	row, err := h.svc.SetPOOverride(c.Request.Context(), c.Param("id"), req.WBS, req.Description, *req.POQuantity, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, row)
}

// Export GET /projects/:id/stock/export
func (h *StockHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.ExportStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
