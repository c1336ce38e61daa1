package handler

import (
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/storage"
	"github.com/gin-gonic/gin"
)

// UploadHandler hands out presigned URLs for DR photos and release
// attachments. The dashboard talks to object storage directly; the object
// key is what gets stored on the receipt or form.
type UploadHandler struct {
	store *storage.Client
}

func NewUploadHandler(store *storage.Client) *UploadHandler {
	return &UploadHandler{store: store}
}

type presignRequest struct {
	Filename string `json:"filename" binding:"required"`
	Kind     string `json:"kind"` // dr-photo | release-attachment
}

// Presign POST /uploads/presign
func (h *UploadHandler) Presign(c *gin.Context) {
	if h.store == nil {
		RespondError(c, errStorageDisabled)
		return
	}

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	prefix := "dr-photos"
	if req.Kind == "release-attachment" {
		prefix = "release-attachments"
	}

	objectKey := h.store.NewObjectKey(prefix, req.Filename)
	uploadURL, err := h.store.PresignPut(c.Request.Context(), objectKey, 15*time.Minute)
	if err != nil {
		RespondError(c, err)
		return
	}
	downloadURL, err := h.store.PresignGet(c.Request.Context(), objectKey, 24*time.Hour)
	if err != nil {
		RespondError(c, err)
		return
	}

	OK(c, gin.H{
		"object_key":   objectKey,
		"upload_url":   uploadURL,
		"download_url": downloadURL,
	})
}
