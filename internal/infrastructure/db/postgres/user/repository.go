package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/db/postgres"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type Repository struct {
	db           postgres.DB
	hasher       PasswordHasher
	auditor      postgres.Auditor
	defaultQuota int64
}

func NewRepository(
	db postgres.DB,
	hasher PasswordHasher,
	auditor postgres.Auditor,
	defaultQuota int64,
) user.Repository {
	return &Repository{
		db:           db,
		hasher:       hasher,
		auditor:      auditor,
		defaultQuota: defaultQuota,
	}
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := new(User)
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.Email,
		&u.RoleID,
		&u.StorageQuota,
		&u.StorageCurrent,
		&u.Onboarding,
		&u.TotpKey,
		&u.DisableDate,

		&u.CreateDate,
		&u.DeleteDate,
	); err != nil {
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) Create(ctx context.Context, req user.User, requesterID string) (*user.User, error) {
	var out *user.User

	err := postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		db := postgres.Conn(ctx, r.db)

		var exists bool
		if err := db.QueryRow(ctx, ExistsActiveUsername, req.Username).Scan(&exists); err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return user.ErrAlreadyExistingUsername
		}

		hash, err := r.hasher.Hash(req.Password)
		if err != nil {
			return err
		}

		quota := req.StorageQuota
		if quota == 0 {
			quota = r.defaultQuota
		}

		out, err = scanUser(db.QueryRow(ctx, InsertUser,
			uuid.NewString(),
			req.Username,
			hash,
			req.Email,
			req.RoleID,
			quota,
			req.StorageCurrent,
			true,
			req.TotpKey,
			req.DisableDate,
			time.Now(),
		))
		if err != nil {
			if postgres.IsPgUniqueViolation(err) {
				return user.ErrAlreadyExistingUsername
			}
			return fmt.Errorf("insert user: %w", err)
		}

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeCreate, auditlog.ClassUser, out.ID, out.Username, requesterID))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetByID also returns soft-deleted users.
func (r *Repository) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := scanUser(postgres.Conn(ctx, r.db).QueryRow(ctx, SelectUserByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) GetActiveByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := scanUser(postgres.Conn(ctx, r.db).QueryRow(ctx, SelectActiveUserByUsername, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) Update(ctx context.Context, req user.User, requesterID string) (*user.User, error) {
	var out *user.User

	err := postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		var err error
		out, err = scanUser(postgres.Conn(ctx, r.db).QueryRow(ctx, UpdateUserByID,
			req.Email,
			req.RoleID,
			req.StorageQuota,
			req.Onboarding,
			req.TotpKey,
			req.DisableDate,
			req.ID,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				out = nil
				return nil
			}
			return fmt.Errorf("update user: %w", err)
		}

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeUpdate, auditlog.ClassUser, out.ID, out.Username, requesterID))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) UpdatePassword(ctx context.Context, req user.User, requesterID string) error {
	hash, err := r.hasher.Hash(req.Password)
	if err != nil {
		return err
	}

	return postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		tag, err := postgres.Conn(ctx, r.db).Exec(ctx, UpdateUserPassword, hash, req.ID)
		if err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return user.ErrNotFound
		}

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeUpdate, auditlog.ClassUser, req.ID, req.Username, requesterID))
	})
}

// UpdateHashedPassword stores req.Password as is.
func (r *Repository) UpdateHashedPassword(ctx context.Context, req user.User) error {
	return r.execOne(ctx, "update hashed password", UpdateUserPassword, req.Password, req.ID)
}

func (r *Repository) UpdateQuota(ctx context.Context, req user.User) error {
	return r.execOne(ctx, "update quota", UpdateUserQuota, req.StorageQuota, req.StorageCurrent, req.ID)
}

func (r *Repository) UpdateOnboarding(ctx context.Context, req user.User) error {
	return r.execOne(ctx, "update onboarding", UpdateUserOnboarding, req.Onboarding, req.ID)
}

func (r *Repository) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return nil
}

// Delete soft-deletes the active user named username together with the
// user's documents and every ACL granted to the user or on those documents.
func (r *Repository) Delete(ctx context.Context, username, requesterID string) error {
	return postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		db := postgres.Conn(ctx, r.db)
		now := time.Now()

		var id string
		if err := db.QueryRow(ctx, SoftDeleteUserByUsername, now, username).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.ErrNotFound
			}
			return fmt.Errorf("delete user: %w", err)
		}
		if _, err := db.Exec(ctx, SoftDeleteUserAcls, now, id); err != nil {
			return fmt.Errorf("delete user acls: %w", err)
		}
		if _, err := db.Exec(ctx, SoftDeleteUserDocuments, now, id); err != nil {
			return fmt.Errorf("delete user documents: %w", err)
		}

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeDelete, auditlog.ClassUser, id, username, requesterID))
	})
}

func (r *Repository) FindByCriteria(ctx context.Context, c user.Criteria, sort criteria.Sort) ([]user.Dto, error) {
	f := postgres.NewFilter().Where("u." + postgres.NotDeleted)
	if c.Search != "" {
		p := f.Arg(postgres.Contains(c.Search))
		f.Where("(u.username ILIKE " + p + " OR u.email ILIKE " + p + ")")
	}
	if c.UserID != "" {
		f.Where("u.id = " + f.Arg(c.UserID))
	}
	if c.UserName != "" {
		f.Where("u.username = " + f.Arg(c.UserName))
	}

	query := selectUserDtos + f.SQL() + postgres.OrderBy(sort, sortColumns, "u.username ASC", "u.id")
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, f.Args()...)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer rows.Close()

	var ds []*UserDto
	for rows.Next() {
		d := new(UserDto)
		if err = rows.Scan(
			&d.ID,
			&d.Username,
			&d.Email,
			&d.CreateDate,
			&d.StorageCurrent,
			&d.StorageQuota,
			&d.TotpKey,
			&d.DisableDate,
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

func (r *Repository) GetGlobalStorageCurrent(ctx context.Context) (int64, error) {
	var total int64
	if err := postgres.Conn(ctx, r.db).QueryRow(ctx, SumActiveStorageCurrent).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum storage: %w", err)
	}

	return total, nil
}

func (r *Repository) GetActiveUserCount(ctx context.Context) (int64, error) {
	var count int64
	if err := postgres.Conn(ctx, r.db).QueryRow(ctx, CountActiveUsers).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}
