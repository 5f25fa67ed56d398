package acl

import "context"

type Repository interface {
	Create(ctx context.Context, a Acl, requesterID string) (*Acl, error)
	GetBySourceID(ctx context.Context, sourceID string) ([]Dto, error)
	CheckPermission(ctx context.Context, sourceID string, perm PermType, targetIDs []string) (bool, error)
	Delete(ctx context.Context, sourceID string, perm PermType, targetID, requesterID string) error
}
