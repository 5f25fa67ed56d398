package acl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"document-manager-api/internal/domain/acl"
	"document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db      postgres.DB
	auditor postgres.Auditor
}

func NewRepository(db postgres.DB, auditor postgres.Auditor) acl.Repository {
	return &Repository{db: db, auditor: auditor}
}

func (r *Repository) Create(ctx context.Context, a acl.Acl, requesterID string) (*acl.Acl, error) {
	if !a.Perm.Valid() {
		return nil, fmt.Errorf("invalid permission %q", a.Perm)
	}
	if a.Type == "" {
		a.Type = acl.TargetUser
	}
	if !a.Type.Valid() {
		return nil, fmt.Errorf("invalid target type %q", a.Type)
	}

	var out *acl.Acl
	err := postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		m := new(Acl)
		if err := postgres.Conn(ctx, r.db).QueryRow(ctx, InsertAcl,
			uuid.NewString(), a.SourceID, string(a.Perm), a.TargetID, string(a.Type),
		).Scan(
			&m.ID,
			&m.SourceID,
			&m.Perm,
			&m.TargetID,
			&m.Type,
			&m.DeleteDate,
		); err != nil {
			return fmt.Errorf("insert acl: %w", err)
		}
		out = fromDBModel(m)

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeCreate, auditlog.ClassAcl, out.ID, string(out.Perm)+" "+out.TargetID, requesterID))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) GetBySourceID(ctx context.Context, sourceID string) ([]acl.Dto, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, SelectAclsBySource, sourceID)
	if err != nil {
		return nil, fmt.Errorf("select acls: %w", err)
	}
	defer rows.Close()

	var ds []*AclDto
	for rows.Next() {
		d := new(AclDto)
		if err = rows.Scan(
			&d.ID,
			&d.SourceID,
			&d.Perm,
			&d.TargetID,
			&d.TargetName,
			&d.Type,
		); err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBDtos(ds), nil
}

func (r *Repository) CheckPermission(ctx context.Context, sourceID string, perm acl.PermType, targetIDs []string) (bool, error) {
	if len(targetIDs) == 0 {
		return false, nil
	}

	var ok bool
	if err := postgres.Conn(ctx, r.db).QueryRow(ctx, CheckAclPermission, sourceID, string(perm), targetIDs).Scan(&ok); err != nil {
		return false, fmt.Errorf("check permission: %w", err)
	}

	return ok, nil
}

func (r *Repository) Delete(ctx context.Context, sourceID string, perm acl.PermType, targetID, requesterID string) error {
	return postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		var id string
		if err := postgres.Conn(ctx, r.db).QueryRow(ctx, SoftDeleteAcl,
			time.Now(), sourceID, string(perm), targetID,
		).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return acl.ErrNotFound
			}
			return fmt.Errorf("delete acl: %w", err)
		}

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeDelete, auditlog.ClassAcl, id, string(perm)+" "+targetID, requesterID))
	})
}
