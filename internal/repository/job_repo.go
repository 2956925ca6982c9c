package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(ctx context.Context, job *model.AutomationJob) error
	Update(ctx context.Context, job *model.AutomationJob) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AutomationJob, error)
	ListRecent(ctx context.Context, limit int) ([]model.AutomationJob, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *model.AutomationJob) error {
	return GetDB(ctx, r.db).Create(job).Error
}

func (r *jobRepository) Update(ctx context.Context, job *model.AutomationJob) error {
	return GetDB(ctx, r.db).Save(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AutomationJob, error) {
	var job model.AutomationJob
	if err := GetDB(ctx, r.db).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListRecent(ctx context.Context, limit int) ([]model.AutomationJob, error) {
	var jobs []model.AutomationJob
	if err := GetDB(ctx, r.db).Order("created_at desc").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
