package group

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/group"
	"document-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db      postgres.DB
	auditor postgres.Auditor
}

func NewRepository(db postgres.DB, auditor postgres.Auditor) group.Repository {
	return &Repository{db: db, auditor: auditor}
}

func scanGroup(row pgx.Row) (*group.Group, error) {
	m := new(Group)
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.CreateDate,
		&m.DeleteDate,
	); err != nil {
		return nil, err
	}

	return fromDBModel(m), nil
}

func (r *Repository) Create(ctx context.Context, g group.Group, requesterID string) (*group.Group, error) {
	var out *group.Group

	err := postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		db := postgres.Conn(ctx, r.db)

		var exists bool
		if err := db.QueryRow(ctx, ExistsActiveGroupName, g.Name).Scan(&exists); err != nil {
			return fmt.Errorf("check group name: %w", err)
		}
		if exists {
			return group.ErrAlreadyExistingName
		}

		var err error
		out, err = scanGroup(db.QueryRow(ctx, InsertGroup, uuid.NewString(), g.Name, time.Now()))
		if err != nil {
			if postgres.IsPgUniqueViolation(err) {
				return group.ErrAlreadyExistingName
			}
			return fmt.Errorf("insert group: %w", err)
		}

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeCreate, auditlog.ClassGroup, out.ID, out.Name, requesterID))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetActiveByName returns nil when no active group has that name.
func (r *Repository) GetActiveByName(ctx context.Context, name string) (*group.Group, error) {
	g, err := scanGroup(postgres.Conn(ctx, r.db).QueryRow(ctx, SelectActiveGroupByName, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select group: %w", err)
	}

	return g, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]group.Group, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, SelectActiveGroups)
	if err != nil {
		return nil, fmt.Errorf("select groups: %w", err)
	}
	defer rows.Close()

	var gs []group.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		gs = append(gs, *g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return gs, nil
}

func (r *Repository) Delete(ctx context.Context, name, requesterID string) error {
	return postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		db := postgres.Conn(ctx, r.db)
		now := time.Now()

		var id string
		if err := db.QueryRow(ctx, SoftDeleteGroup, now, name).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return group.ErrNotFound
			}
			return fmt.Errorf("delete group: %w", err)
		}
		if _, err := db.Exec(ctx, SoftDeleteGroupMembers, now, id); err != nil {
			return fmt.Errorf("delete group members: %w", err)
		}
		if _, err := db.Exec(ctx, SoftDeleteGroupAcls, now, id); err != nil {
			return fmt.Errorf("delete group acls: %w", err)
		}

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeDelete, auditlog.ClassGroup, id, name, requesterID))
	})
}

// AddMember is a no-op for an existing membership.
func (r *Repository) AddMember(ctx context.Context, groupID, userID string) error {
	if _, err := postgres.Conn(ctx, r.db).Exec(ctx, InsertGroupMember,
		uuid.NewString(), groupID, userID, time.Now(),
	); err != nil {
		return fmt.Errorf("insert group member: %w", err)
	}

	return nil
}

func (r *Repository) RemoveMember(ctx context.Context, groupID, userID string) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, SoftDeleteGroupMember, time.Now(), groupID, userID)
	if err != nil {
		return fmt.Errorf("delete group member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrMemberNotFound
	}

	return nil
}

func (r *Repository) FindMembers(ctx context.Context, groupID string) ([]group.Member, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, SelectGroupMembers, groupID)
	if err != nil {
		return nil, fmt.Errorf("select group members: %w", err)
	}
	defer rows.Close()

	var ms []*Member
	for rows.Next() {
		m := new(Member)
		if err = rows.Scan(&m.UserID, &m.Username); err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBMembers(ms), nil
}

func (r *Repository) FindGroupIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, SelectGroupIDsByUserID, userID)
	if err != nil {
		return nil, fmt.Errorf("select user groups: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
