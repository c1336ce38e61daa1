package handler

import (
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/service"
	"github.com/gin-gonic/gin"
)

type IPOWHandler struct {
	svc *service.IPOWService
}

func NewIPOWHandler(svc *service.IPOWService) *IPOWHandler {
	return &IPOWHandler{svc: svc}
}

// List GET /projects/:id/ipow
func (h *IPOWHandler) List(c *gin.Context) {
	items, err := h.svc.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, gin.H{"items": items, "total": len(items)})
}

// Import POST /projects/:id/ipow/import
// Replaces the project's plan with the uploaded IPOW workbook.
func (h *IPOWHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing workbook file: "+err.Error())
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "read workbook: "+err.Error())
		return
	}
	defer src.Close()

	count, err := h.svc.Import(c.Request.Context(), c.Param("id"), src)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, gin.H{"imported": count})
}
