package services

import (
	"context"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/criteria"
)

type AuditService struct {
	auditRepository auditlog.Repository
}

func NewAuditService(auditRepository auditlog.Repository) ports.AuditService {
	return &AuditService{auditRepository: auditRepository}
}

func (as *AuditService) List(
	ctx context.Context,
	c auditlog.Criteria,
	page criteria.Page,
) (criteria.PageResult[auditlog.AuditLog], error) {
	return as.auditRepository.FindByCriteria(ctx, c, page)
}
