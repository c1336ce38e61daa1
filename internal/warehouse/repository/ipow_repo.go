package repository

import (
	"context"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"gorm.io/gorm"
)

type IPOWRepository struct {
	db *gorm.DB
}

func NewIPOWRepository(db *gorm.DB) *IPOWRepository {
	return &IPOWRepository{db: db}
}

// ListByProject returns the project's planned lines in plan order. An empty
// slice (not an error) means the project has no plan.
func (r *IPOWRepository) ListByProject(ctx context.Context, projectID string) ([]entity.IPOWItem, error) {
	var items []entity.IPOWItem
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("sort_order ASC").
		Find(&items).Error
	return items, err
}

// ReplaceForProject swaps the project's plan for the given lines in one
// transaction. Used by the planning import.
func (r *IPOWRepository) ReplaceForProject(ctx context.Context, projectID string, items []entity.IPOWItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.IPOWItem{}, "project_id = ?", projectID).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
