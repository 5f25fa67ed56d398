package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"document-manager-api/internal/domain/registration"
	"document-manager-api/internal/infrastructure/db/postgres"
)

// Repository keeps pending signups. Rows are removed outright once an
// administrator approves or rejects them.
type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) registration.Repository {
	return &Repository{db: db}
}

func scanRegistration(row pgx.Row) (*registration.Registration, error) {
	m := new(Registration)
	if err := row.Scan(
		&m.ID,
		&m.Username,
		&m.Email,
		&m.Password,
		&m.CreateDate,
	); err != nil {
		return nil, err
	}

	return fromDBModel(m), nil
}

func (r *Repository) Upsert(ctx context.Context, req registration.Registration) (*registration.Registration, error) {
	out, err := scanRegistration(postgres.Conn(ctx, r.db).QueryRow(ctx, UpsertRegistration,
		uuid.NewString(), req.Username, req.Email, req.Password, req.CreateDate,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert registration: %w", err)
	}

	return out, nil
}

// GetByUsername returns nil when nothing is pending for username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*registration.Registration, error) {
	out, err := scanRegistration(postgres.Conn(ctx, r.db).QueryRow(ctx, SelectRegistrationByUsername, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select registration: %w", err)
	}

	return out, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]registration.Registration, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, SelectRegistrations)
	if err != nil {
		return nil, fmt.Errorf("select registrations: %w", err)
	}
	defer rows.Close()

	var rs []registration.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		rs = append(rs, *reg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rs, nil
}

func (r *Repository) Delete(ctx context.Context, username string) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, DeleteRegistration, username)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return registration.ErrNotFound
	}

	return nil
}
