package ports

import (
	"context"

	"document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/criteria"
)

type AuditService interface {
	List(ctx context.Context, c auditlog.Criteria, page criteria.Page) (criteria.PageResult[auditlog.AuditLog], error)
}
