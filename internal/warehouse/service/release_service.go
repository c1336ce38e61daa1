package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/google/uuid"
)

type ReleaseService struct {
	repo  *repository.ReleaseRepository
	cache *StockCache
}

func NewReleaseService(repo *repository.ReleaseRepository, cache *StockCache) *ReleaseService {
	return &ReleaseService{repo: repo, cache: cache}
}

func (s *ReleaseService) List(ctx context.Context, params repository.ReleaseListParams) ([]entity.ReleaseForm, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *ReleaseService) Get(ctx context.Context, id string) (*entity.ReleaseForm, error) {
	return s.repo.FindByID(ctx, id)
}

type ReleaseItemInput struct {
	Description string  `json:"description" binding:"required"`
	WBS         string  `json:"wbs"`
	Quantity    float64 `json:"quantity" binding:"required"`
	Unit        string  `json:"unit"`
}

type CreateReleaseRequest struct {
	ProjectID    string             `json:"project_id" binding:"required"`
	ReceivedBy   string             `json:"received_by" binding:"required"`
	ReleaseDate  string             `json:"release_date" binding:"required"` // YYYY-MM-DD
	Warehouseman string             `json:"warehouseman"`
	Purpose      string             `json:"purpose"`
	Attachment   string             `json:"attachment"`
	Items        []ReleaseItemInput `json:"items" binding:"required,min=1"`
}

func (s *ReleaseService) Create(ctx context.Context, req *CreateReleaseRequest, userID string) (*entity.ReleaseForm, error) {
	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid release_date %q: %w", req.ReleaseDate, err)
	}

	number, err := s.repo.GenerateNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate release number: %w", err)
	}

	form := &entity.ReleaseForm{
		ID:            uuid.New().String(),
		ProjectID:     req.ProjectID,
		ReleaseNumber: number,
		ReceivedBy:    req.ReceivedBy,
		ReleaseDate:   releaseDate,
		Locked:        true,
		CreatedBy:     userID,
	}
	if req.Warehouseman != "" {
		w := req.Warehouseman
		form.Warehouseman = &w
	}
	if req.Purpose != "" {
		p := req.Purpose
		form.Purpose = &p
	}
	if req.Attachment != "" {
		a := req.Attachment
		form.Attachment = &a
	}
	form.Items = buildReleaseItems(form.ID, req.Items)

	if err := s.repo.Create(ctx, form); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, req.ProjectID)
	return form, nil
}

type UpdateReleaseRequest struct {
	ReceivedBy   *string            `json:"received_by"`
	ReleaseDate  *string            `json:"release_date"` // YYYY-MM-DD
	Warehouseman *string            `json:"warehouseman"`
	Purpose      *string            `json:"purpose"`
	Attachment   *string            `json:"attachment"`
	Items        []ReleaseItemInput `json:"items" binding:"required,min=1"`
}

// Update edits a release form. Allowed only while unlocked and only for the
// warehouseman who authored it; the item list is replaced wholesale.
func (s *ReleaseService) Update(ctx context.Context, id string, req *UpdateReleaseRequest, userID string) (*entity.ReleaseForm, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.Locked {
		return nil, ErrLocked
	}
	if form.CreatedBy != userID {
		return nil, ErrNotAuthor
	}

	if req.ReceivedBy != nil {
		form.ReceivedBy = *req.ReceivedBy
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("invalid release_date %q: %w", *req.ReleaseDate, err)
		}
		form.ReleaseDate = releaseDate
	}
	if req.Warehouseman != nil {
		form.Warehouseman = req.Warehouseman
	}
	if req.Purpose != nil {
		form.Purpose = req.Purpose
	}
	if req.Attachment != nil {
		form.Attachment = req.Attachment
	}

	items := buildReleaseItems(form.ID, req.Items)
	if err := s.repo.Update(ctx, form, items); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, form.ProjectID)
	return form, nil
}

func (s *ReleaseService) SetLock(ctx context.Context, id string, locked bool) (*entity.ReleaseForm, error) {
	if err := s.repo.SetLock(ctx, id, locked); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func buildReleaseItems(formID string, inputs []ReleaseItemInput) []entity.ReleaseItem {
	items := make([]entity.ReleaseItem, 0, len(inputs))
	for i, item := range inputs {
		unit := item.Unit
		if unit == "" {
			unit = "pcs"
		}
		wbs := item.WBS
		items = append(items, entity.ReleaseItem{
			ID:          uuid.New().String(),
			FormID:      formID,
			Description: item.Description,
			WBS:         cleanWBS(&wbs),
			Quantity:    item.Quantity,
			Unit:        unit,
			SortOrder:   i + 1,
		})
	}
	return items
}
