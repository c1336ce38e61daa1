package service

import (
	"context"
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/project/entity"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/project/repository"
	"github.com/google/uuid"
)

type ProjectService struct {
	repo *repository.ProjectRepository
}

func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context, status, search string, page, size int) ([]entity.Project, int64, error) {
	return s.repo.List(ctx, status, search, page, size)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateProjectRequest struct {
	Name      string     `json:"name" binding:"required"`
	Client    string     `json:"client"`
	Location  string     `json:"location"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest) (*entity.Project, error) {
	project := &entity.Project{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Client:    req.Client,
		Location:  req.Location,
		Status:    entity.StatusActive,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

type UpdateProjectRequest struct {
	Name      *string    `json:"name"`
	Client    *string    `json:"client"`
	Location  *string    `json:"location"`
	Status    *string    `json:"status"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (s *ProjectService) Update(ctx context.Context, id string, req *UpdateProjectRequest) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Client != nil {
		project.Client = *req.Client
	}
	if req.Location != nil {
		project.Location = *req.Location
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
