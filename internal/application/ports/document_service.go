package ports

import (
	"context"

	"document-manager-api/internal/domain/acl"
	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/domain/document"
)

type DocumentService interface {
	List(ctx context.Context, userID string, c document.Criteria, page criteria.Page, sort criteria.Sort) (criteria.PageResult[document.Dto], error)
	ListAll(ctx context.Context, offset, limit int) (document.Documents, error)
	ListByOwner(ctx context.Context, ownerID string) (document.Documents, error)
	Create(ctx context.Context, d document.Document, userID string) (*document.Document, error)
	Get(ctx context.Context, id, userID string) (*document.Details, error)
	Update(ctx context.Context, d document.Document, userID string) (*document.Document, error)
	UpdateFileID(ctx context.Context, id string, fileID *string, userID string) error
	Delete(ctx context.Context, id, userID string) error
	Share(ctx context.Context, id string, perm acl.PermType, targetName string, targetType acl.TargetType, userID string) (*acl.Acl, error)
	Unshare(ctx context.Context, id string, perm acl.PermType, targetID, userID string) error
}
