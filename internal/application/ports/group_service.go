package ports

import (
	"context"

	"document-manager-api/internal/domain/group"
)

type GroupService interface {
	List(ctx context.Context) ([]group.Group, error)
	Create(ctx context.Context, name, requesterID string) (*group.Group, error)
	Delete(ctx context.Context, name, requesterID string) error
	Members(ctx context.Context, name string) ([]group.Member, error)
	AddMember(ctx context.Context, name, username string) error
	RemoveMember(ctx context.Context, name, username string) error
}
