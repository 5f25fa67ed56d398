package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/domain/group"
	"document-manager-api/internal/domain/user"
)

type GroupService struct {
	groupRepository group.Repository
	userRepository  user.Repository
	tx              ports.Transactor
	mCounter        *prometheus.CounterVec
}

func NewGroupService(
	groupRepository group.Repository,
	userRepository user.Repository,
	tx ports.Transactor,
	mCounter *prometheus.CounterVec,
) ports.GroupService {
	return &GroupService{
		groupRepository: groupRepository,
		userRepository:  userRepository,
		tx:              tx,
		mCounter:        mCounter,
	}
}

func (gs *GroupService) List(ctx context.Context) ([]group.Group, error) {
	return gs.groupRepository.FindAll(ctx)
}

func (gs *GroupService) Create(ctx context.Context, name, requesterID string) (*group.Group, error) {
	g, err := gs.groupRepository.Create(ctx, group.Group{Name: name}, requesterID)
	if err != nil {
		return nil, err
	}

	gs.mCounter.WithLabelValues("group_created_total").Inc()

	return g, nil
}

func (gs *GroupService) Delete(ctx context.Context, name, requesterID string) error {
	if err := gs.groupRepository.Delete(ctx, name, requesterID); err != nil {
		return err
	}

	gs.mCounter.WithLabelValues("group_deleted_total").Inc()

	return nil
}

func (gs *GroupService) getGroup(ctx context.Context, name string) (*group.Group, error) {
	g, err := gs.groupRepository.GetActiveByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrNotFound
	}
	return g, nil
}

func (gs *GroupService) Members(ctx context.Context, name string) ([]group.Member, error) {
	g, err := gs.getGroup(ctx, name)
	if err != nil {
		return nil, err
	}

	return gs.groupRepository.FindMembers(ctx, g.ID)
}

// membership resolves both names and hands their ids to fn inside one tx.
func (gs *GroupService) membership(ctx context.Context, name, username string, fn func(ctx context.Context, groupID, userID string) error) error {
	return gs.tx.WithinTx(ctx, func(ctx context.Context) error {
		g, err := gs.getGroup(ctx, name)
		if err != nil {
			return err
		}

		u, err := gs.userRepository.GetActiveByUsername(ctx, username)
		if err != nil {
			return err
		}
		if u == nil {
			return user.ErrNotFound
		}

		return fn(ctx, g.ID, u.ID)
	})
}

func (gs *GroupService) AddMember(ctx context.Context, name, username string) error {
	return gs.membership(ctx, name, username, gs.groupRepository.AddMember)
}

func (gs *GroupService) RemoveMember(ctx context.Context, name, username string) error {
	return gs.membership(ctx, name, username, gs.groupRepository.RemoveMember)
}
