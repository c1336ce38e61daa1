package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/recon"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OverrideRepository struct {
	db *gorm.DB
}

func NewOverrideRepository(db *gorm.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

// Upsert writes the override for (project, WBS, description),
// last-write-wins on conflict so at most one row exists per key. The
// backing unique index stores a missing WBS as the empty string.
func (r *OverrideRepository) Upsert(ctx context.Context, ov *entity.POOverride) error {
	ov.DescriptionNorm = recon.Normalize(ov.Description)
	ov.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "project_id"}, {Name: "wbs"}, {Name: "description_norm"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"po_quantity", "description", "updated_by", "updated_at"}),
	}).Create(ov).Error
}

// Get looks up the override by exact composite key. A nil result with nil
// error means no override; callers treat that as a PO target of 0.
func (r *OverrideRepository) Get(ctx context.Context, projectID string, wbs *string, description string) (*entity.POOverride, error) {
	storedWBS := ""
	if wbs != nil {
		storedWBS = *wbs
	}

	var ov entity.POOverride
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND wbs = ? AND description_norm = ?",
			projectID, storedWBS, recon.Normalize(description)).
		First(&ov).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ov, nil
}

func (r *OverrideRepository) ListByProject(ctx context.Context, projectID string) ([]entity.POOverride, error) {
	var overrides []entity.POOverride
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&overrides).Error
	return overrides, err
}
