package handler

import (
	"strconv"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/service"
	"github.com/gin-gonic/gin"
)

type ReleaseHandler struct {
	svc *service.ReleaseService
}

func NewReleaseHandler(svc *service.ReleaseService) *ReleaseHandler {
	return &ReleaseHandler{svc: svc}
}

// List GET /release-forms
func (h *ReleaseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	params := repository.ReleaseListParams{
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

	forms, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, gin.H{"items": forms, "total": total, "page": page, "size": size})
}

// Get GET /release-forms/:id
func (h *ReleaseHandler) Get(c *gin.Context) {
	form, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, form)
}

// Create POST /release-forms
func (h *ReleaseHandler) Create(c *gin.Context) {
	var req service.CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	userID := c.GetString("user_id")

	form, err := h.svc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, form)
}

// Update PUT /release-forms/:id
// Rejected while locked, and for anyone but the authoring warehouseman.
func (h *ReleaseHandler) Update(c *gin.Context) {
	var req service.UpdateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	userID := c.GetString("user_id")

	form, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, form)
}

// SetLock PUT /release-forms/:id/lock
func (h *ReleaseHandler) SetLock(c *gin.Context) {
	var req setLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	form, err := h.svc.SetLock(c.Request.Context(), c.Param("id"), *req.Locked)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, form)
}
