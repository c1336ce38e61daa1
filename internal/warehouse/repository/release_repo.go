package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"gorm.io/gorm"
)

type ReleaseRepository struct {
	db *gorm.DB
}

func NewReleaseRepository(db *gorm.DB) *ReleaseRepository {
	return &ReleaseRepository{db: db}
}

type ReleaseListParams struct {
	ProjectID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	Page      int
	Size      int
}

func (r *ReleaseRepository) List(ctx context.Context, params ReleaseListParams) ([]entity.ReleaseForm, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.ReleaseForm{})

	if params.ProjectID != "" {
		query = query.Where("project_id = ?", params.ProjectID)
	}
	if params.DateFrom != nil {
		query = query.Where("release_date >= ?", params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("release_date <= ?", params.DateTo)
	}
	if params.Search != "" {
		kw := "%" + params.Search + "%"
		query = query.Where("release_number ILIKE ? OR received_by ILIKE ?", kw, kw)
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

	var forms []entity.ReleaseForm
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("release_number DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&forms).Error

	return forms, total, err
}

func (r *ReleaseRepository) FindByID(ctx context.Context, id string) (*entity.ReleaseForm, error) {
	var form entity.ReleaseForm
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &form, nil
}

// Create inserts the form and its items all-or-nothing, with the same
// compensating delete as delivery receipts.
func (r *ReleaseRepository) Create(ctx context.Context, form *entity.ReleaseForm) error {
	items := form.Items
	form.Items = nil

	if err := r.db.WithContext(ctx).Create(form).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateNumber
		}
		return err
	}

	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			r.db.WithContext(ctx).Delete(&entity.ReleaseForm{}, "id = ?", form.ID)
			return fmt.Errorf("create release items: %w", err)
		}
	}

	form.Items = items
	return nil
}

// Update saves the header fields and replaces the whole item list
// (delete-then-reinsert, not a diff) in one transaction.
func (r *ReleaseRepository) Update(ctx context.Context, form *entity.ReleaseForm, items []entity.ReleaseItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		form.Items = nil
		if err := tx.Save(form).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.ReleaseItem{}, "form_id = ?", form.ID).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		form.Items = items
		return nil
	})
}

func (r *ReleaseRepository) SetLock(ctx context.Context, id string, locked bool) error {
	res := r.db.WithContext(ctx).
		Model(&entity.ReleaseForm{}).
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

// ListItemsByProject flattens every release line of the project in form
// order then line order.
func (r *ReleaseRepository) ListItemsByProject(ctx context.Context, projectID string) ([]entity.ReleaseItem, error) {
	var items []entity.ReleaseItem
	err := r.db.WithContext(ctx).
		Model(&entity.ReleaseItem{}).
		Joins("JOIN release_forms ON release_forms.id = release_items.form_id").
		Where("release_forms.project_id = ?", projectID).
		Order("release_forms.release_number ASC, release_items.sort_order ASC").
		Find(&items).Error
	return items, err
}

// GenerateNumber produces the next release number, RF-{year}-{seq}.
func (r *ReleaseRepository) GenerateNumber(ctx context.Context) (string, error) {
	year := time.Now().Format("2006")
	prefix := fmt.Sprintf("RF-%s-", year)

	var maxNumber string
	err := r.db.WithContext(ctx).
		Model(&entity.ReleaseForm{}).
		Select("COALESCE(MAX(release_number), '')").
		Where("release_number LIKE ?", prefix+"%").
		Scan(&maxNumber).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		fmt.Sscanf(maxNumber, "RF-"+year+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("RF-%s-%04d", year, seq), nil
}
