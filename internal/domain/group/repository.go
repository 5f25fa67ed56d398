package group

import "context"

type Repository interface {
	Create(ctx context.Context, g Group, requesterID string) (*Group, error)
	GetActiveByName(ctx context.Context, name string) (*Group, error)
	FindAll(ctx context.Context) ([]Group, error)
	// Delete also drops the memberships and the ACLs granted to the group.
	Delete(ctx context.Context, name, requesterID string) error
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	FindMembers(ctx context.Context, groupID string) ([]Member, error)
	FindGroupIDsByUserID(ctx context.Context, userID string) ([]string, error)
}
