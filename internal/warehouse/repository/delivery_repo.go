package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"gorm.io/gorm"
)

type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

type DeliveryListParams struct {
	ProjectID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	Page      int
	Size      int
}

// List returns delivery receipts with nested items, newest first.
func (r *DeliveryRepository) List(ctx context.Context, params DeliveryListParams) ([]entity.DeliveryReceipt, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.DeliveryReceipt{})

	if params.ProjectID != "" {
		query = query.Where("project_id = ?", params.ProjectID)
	}
	if params.DateFrom != nil {
		query = query.Where("received_date >= ?", params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("received_date <= ?", params.DateTo)
	}
	if params.Search != "" {
		kw := "%" + params.Search + "%"
		query = query.Where("dr_number ILIKE ? OR supplier ILIKE ?", kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}

	var receipts []entity.DeliveryReceipt
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("dr_number DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&receipts).Error

	return receipts, total, err
}

func (r *DeliveryRepository) FindByID(ctx context.Context, id string) (*entity.DeliveryReceipt, error) {
	var dr entity.DeliveryReceipt
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&dr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dr, nil
}

// Create inserts the receipt and its items all-or-nothing. If item insertion
// fails the parent row is deleted again (compensating delete, no retry) so
// no orphaned empty receipt survives.
func (r *DeliveryRepository) Create(ctx context.Context, dr *entity.DeliveryReceipt) error {
	items := dr.Items
	dr.Items = nil

	if err := r.db.WithContext(ctx).Create(dr).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateNumber
		}
		return err
	}

	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			r.db.WithContext(ctx).Delete(&entity.DeliveryReceipt{}, "id = ?", dr.ID)
			return fmt.Errorf("create delivery items: %w", err)
		}
	}

	dr.Items = items
	return nil
}

// SetLock flips the lock flag. Single-field update; role checks guard it.
func (r *DeliveryRepository) SetLock(ctx context.Context, id string, locked bool) error {
	res := r.db.WithContext(ctx).
		Model(&entity.DeliveryReceipt{}).
		Where("id = ?", id).
		Update("locked", locked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListItemsByProject returns every delivery line of the project, flattened
// in receipt order then line order. The fallback catalog derivation depends
// on this ordering.
func (r *DeliveryRepository) ListItemsByProject(ctx context.Context, projectID string) ([]entity.DeliveryItem, error) {
	var items []entity.DeliveryItem
	err := r.db.WithContext(ctx).
		Model(&entity.DeliveryItem{}).
		Joins("JOIN delivery_receipts ON delivery_receipts.id = delivery_items.receipt_id").
		Where("delivery_receipts.project_id = ?", projectID).
		Order("delivery_receipts.dr_number ASC, delivery_items.sort_order ASC").
		Find(&items).Error
	return items, err
}

// GenerateNumber produces the next DR number, DR-{year}-{seq}, sequential
// per year.
func (r *DeliveryRepository) GenerateNumber(ctx context.Context) (string, error) {
	year := time.Now().Format("2006")
	prefix := fmt.Sprintf("DR-%s-", year)

	var maxNumber string
	err := r.db.WithContext(ctx).
		Model(&entity.DeliveryReceipt{}).
		Select("COALESCE(MAX(dr_number), '')").
		Where("dr_number LIKE ?", prefix+"%").
		Scan(&maxNumber).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		fmt.Sscanf(maxNumber, "DR-"+year+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("DR-%s-%04d", year, seq), nil
}
