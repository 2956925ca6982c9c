package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
)

type AuditService interface {
	ListLogs(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) ListLogs(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return s.repo.ListRecent(ctx, page, limit)
}
