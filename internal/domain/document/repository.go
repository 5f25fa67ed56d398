package document

import (
	"context"

	"document-manager-api/internal/domain/acl"
	"document-manager-api/internal/domain/criteria"
)

type Repository interface {
	Create(ctx context.Context, d Document, requesterID string) (*Document, error)
	GetByID(ctx context.Context, id string) (*Document, error)
	Update(ctx context.Context, d Document, requesterID string) (*Document, error)
	UpdateFileID(ctx context.Context, d Document) error
	Delete(ctx context.Context, id, requesterID string) error
	GetDocumentCount(ctx context.Context) (int64, error)
	FindAll(ctx context.Context, offset, limit int) (Documents, error)
	FindByUserID(ctx context.Context, userID string) (Documents, error)
	GetDocument(ctx context.Context, id string, perm acl.PermType, targetIDs []string) (*Dto, error)
	FindByCriteria(ctx context.Context, c Criteria, page criteria.Page, sort criteria.Sort) (criteria.PageResult[Dto], error)
}
