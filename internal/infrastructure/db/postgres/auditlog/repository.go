package auditlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DBTX
}

func NewRepository(db postgres.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, l domain.AuditLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreateDate.IsZero() {
		l.CreateDate = time.Now()
	}

	if _, err := postgres.Conn(ctx, r.db).Exec(ctx, InsertAuditLog,
		l.ID, l.EntityID, string(l.EntityClass), string(l.Type), l.Message, l.UserID, l.CreateDate,
	); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}

	return nil
}

func (r *Repository) FindByCriteria(
	ctx context.Context,
	c domain.Criteria,
	page criteria.Page,
) (criteria.PageResult[domain.AuditLog], error) {
	var res criteria.PageResult[domain.AuditLog]

	f := postgres.NewFilter()
	if c.EntityID != "" {
		f.Where("entity_id = " + f.Arg(c.EntityID))
	}
	if c.UserID != "" {
		f.Where("user_id = " + f.Arg(c.UserID))
	}
	where := f.SQL()

	db := postgres.Conn(ctx, r.db)
	if err := db.QueryRow(ctx, countAuditLogs+where, f.Args()...).Scan(&res.Total); err != nil {
		return res, fmt.Errorf("count audit logs: %w", err)
	}

	query := selectAuditLogs + where + orderAuditLogs + f.LimitOffset(page)
	rows, err := db.Query(ctx, query, f.Args()...)
	if err != nil {
		return res, fmt.Errorf("select audit logs: %w", err)
	}
	defer rows.Close()

	var ls AuditLogs
	for rows.Next() {
		l := new(AuditLog)
		if err = rows.Scan(
			&l.ID,
			&l.EntityID,
			&l.EntityClass,
			&l.Type,
			&l.Message,
			&l.UserID,
			&l.CreateDate,
		); err != nil {
			return res, err
		}
		ls = append(ls, l)
	}
	if err = rows.Err(); err != nil {
		return res, err
	}

	res.Items = fromDBModels(ls)

	return res, nil
}
