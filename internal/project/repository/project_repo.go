package repository

import (
	"context"
	"errors"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/project/entity"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("project not found")

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context, status, search string, page, size int) ([]entity.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Project{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		kw := "%" + search + "%"
		query = query.Where("name ILIKE ? OR client ILIKE ? OR location ILIKE ?", kw, kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}

	var projects []entity.Project
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}
