package handler

import (
	"strconv"
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/service"
	"github.com/gin-gonic/gin"
)

type DeliveryHandler struct {
	svc *service.DeliveryService
}

func NewDeliveryHandler(svc *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

// List GET /delivery-receipts
func (h *DeliveryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	params := repository.DeliveryListParams{
		ProjectID: c.Query("project_id"),
		Search:    c.Query("search"),
		Page:      page,
		Size:      size,
	}
	var ok bool
	if params.DateFrom, ok = parseDateQuery(c, "date_from"); !ok {
		return
	}
	if params.DateTo, ok = parseDateQuery(c, "date_to"); !ok {
		return
	}

	receipts, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, gin.H{"items": receipts, "total": total, "page": page, "size": size})
}

// Get GET /delivery-receipts/:id
func (h *DeliveryHandler) Get(c *gin.Context) {
	dr, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, dr)
}

// Create POST /delivery-receipts
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req service.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	userID := c.GetString("user_id")

	dr, err := h.svc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, dr)
}

type setLockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// SetLock PUT /delivery-receipts/:id/lock
func (h *DeliveryHandler) SetLock(c *gin.Context) {
	var req setLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	dr, err := h.svc.SetLock(c.Request.Context(), c.Param("id"), *req.Locked)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, dr)
}

// parseDateQuery reads an optional YYYY-MM-DD query param, answering 400
// itself on a malformed value.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		BadRequest(c, "invalid "+name+": "+raw)
		return nil, false
	}
	return &t, true
}
