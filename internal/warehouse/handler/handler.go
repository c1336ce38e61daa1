package handler

import (
	"errors"
	"net/http"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/storage"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/service"
	"github.com/gin-gonic/gin"
)

var errStorageDisabled = errors.New("object storage is not configured")

// Handlers is the warehouse HTTP handler set.
type Handlers struct {
	Delivery *DeliveryHandler
	Release  *ReleaseHandler
	IPOW     *IPOWHandler
	Stock    *StockHandler
	Upload   *UploadHandler
}

func NewHandlers(services *service.Services, store *storage.Client) *Handlers {
	return &Handlers{
		Delivery: NewDeliveryHandler(services.Delivery),
		Release:  NewReleaseHandler(services.Release),
		IPOW:     NewIPOWHandler(services.IPOW),
		Stock:    NewStockHandler(services.Stock),
		Upload:   NewUploadHandler(store),
	}
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": data})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": message})
}

// RespondError maps service/repository errors onto the API envelope.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrRowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": err.Error()})
	case errors.Is(err, repository.ErrDuplicateNumber):
		c.JSON(http.StatusConflict, gin.H{"code": 40902, "message": err.Error()})
	case errors.Is(err, service.ErrLocked):
		c.JSON(http.StatusConflict, gin.H{"code": 40901, "message": err.Error()})
	case errors.Is(err, service.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"code": 40303, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
	}
}
