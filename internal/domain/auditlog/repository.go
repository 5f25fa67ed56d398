package auditlog

import (
	"context"

	"document-manager-api/internal/domain/criteria"
)

type Repository interface {
	Create(ctx context.Context, l AuditLog) error
	FindByCriteria(ctx context.Context, c Criteria, page criteria.Page) (criteria.PageResult[AuditLog], error)
}
