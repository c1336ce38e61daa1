package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DeliveryService struct {
	repo  *repository.DeliveryRepository
	cache *StockCache
}

func NewDeliveryService(repo *repository.DeliveryRepository, cache *StockCache) *DeliveryService {
	return &DeliveryService{repo: repo, cache: cache}
}

func (s *DeliveryService) List(ctx context.Context, params repository.DeliveryListParams) ([]entity.DeliveryReceipt, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *DeliveryService) Get(ctx context.Context, id string) (*entity.DeliveryReceipt, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateDeliveryItem struct {
	Description string  `json:"description" binding:"required"`
	WBS         string  `json:"wbs"`
	Quantity    float64 `json:"quantity" binding:"required"`
	POQuantity  float64 `json:"po_quantity"`
	Unit        string  `json:"unit"`
}

type CreateDeliveryRequest struct {
	ProjectID    string               `json:"project_id" binding:"required"`
	Supplier     string               `json:"supplier" binding:"required"`
	ReceivedDate string               `json:"received_date" binding:"required"` // YYYY-MM-DD
	ReceivedTime string               `json:"received_time"`
	Warehouseman string               `json:"warehouseman" binding:"required"`
	Photos       []string             `json:"photos"`
	Items        []CreateDeliveryItem `json:"items" binding:"required,min=1"`
}

// Create issues the next DR number and writes the receipt with its items.
// Receipts start locked; item insertion failure rolls the receipt back.
func (s *DeliveryService) Create(ctx context.Context, req *CreateDeliveryRequest, userID string) (*entity.DeliveryReceipt, error) {
	receivedDate, err := time.Parse("2006-01-02", req.ReceivedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid received_date %q: %w", req.ReceivedDate, err)
	}

	number, err := s.repo.GenerateNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate dr number: %w", err)
	}

	dr := &entity.DeliveryReceipt{
		ID:           uuid.New().String(),
		ProjectID:    req.ProjectID,
		DRNumber:     number,
		Supplier:     req.Supplier,
		ReceivedDate: receivedDate,
		Warehouseman: req.Warehouseman,
		Locked:       true,
		CreatedBy:    userID,
	}
	if req.ReceivedTime != "" {
		t := req.ReceivedTime
		dr.ReceivedTime = &t
	}
	if len(req.Photos) > 0 {
		raw, err := json.Marshal(req.Photos)
		if err != nil {
			return nil, fmt.Errorf("encode photo refs: %w", err)
		}
		dr.Photos = datatypes.JSON(raw)
	}

	for i, item := range req.Items {
		unit := item.Unit
		if unit == "" {
			unit = "pcs"
		}
		wbs := item.WBS
		dr.Items = append(dr.Items, entity.DeliveryItem{
			ID:          uuid.New().String(),
			ReceiptID:   dr.ID,
			Description: item.Description,
			WBS:         cleanWBS(&wbs),
			Quantity:    item.Quantity,
			POQuantity:  item.POQuantity,
			Unit:        unit,
			SortOrder:   i + 1,
		})
	}

	if err := s.repo.Create(ctx, dr); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, req.ProjectID)
	return dr, nil
}

// SetLock flips the receipt's lock flag. Unlock is a privileged action; the
// role check happens at the route.
func (s *DeliveryService) SetLock(ctx context.Context, id string, locked bool) (*entity.DeliveryReceipt, error) {
	if err := s.repo.SetLock(ctx, id, locked); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}
