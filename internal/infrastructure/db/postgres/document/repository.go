package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"document-manager-api/internal/domain/acl"
	"document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/criteria"
	"document-manager-api/internal/domain/document"
	"document-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db      postgres.DB
	auditor postgres.Auditor
}

func NewRepository(db postgres.DB, auditor postgres.Auditor) document.Repository {
	return &Repository{db: db, auditor: auditor}
}

func scanDocument(row pgx.Row) (*Document, error) {
	d := new(Document)
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Title,
		&d.Description,
		&d.Language,
		&d.Subject,
		&d.Identifier,
		&d.Publisher,
		&d.Format,
		&d.Source,
		&d.Type,
		&d.Coverage,
		&d.Rights,
		&d.FileID,

		&d.CreateDate,
		&d.UpdateDate,
		&d.DeleteDate,
	)

	return d, err
}

func scanDocumentDto(row pgx.Row) (*DocumentDto, error) {
	d := new(DocumentDto)
	err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.Language,
		&d.Subject,
		&d.Identifier,
		&d.Publisher,
		&d.Format,
		&d.Source,
		&d.Type,
		&d.Coverage,
		&d.Rights,
		&d.FileID,
		&d.UserID,
		&d.Creator,

		&d.CreateDate,
		&d.UpdateDate,
	)

	return d, err
}

func (r *Repository) Create(ctx context.Context, req document.Document, requesterID string) (*document.Document, error) {
	if req.UserID == "" {
		req.UserID = requesterID
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, document.ErrTitleRequired
	}
	if req.UserID == "" {
		return nil, document.ErrOwnerRequired
	}
	if req.Language == "" {
		req.Language = document.DefaultLanguage
	}
	if req.CreateDate.IsZero() {
		req.CreateDate = time.Now()
	}

	var out *document.Document
	err := postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		d, err := scanDocument(postgres.Conn(ctx, r.db).QueryRow(ctx, InsertDocument,
			uuid.NewString(),
			req.UserID,
			req.Title,
			req.Description,
			req.Language,
			req.Subject,
			req.Identifier,
			req.Publisher,
			req.Format,
			req.Source,
			req.Type,
			req.Coverage,
			req.Rights,
			req.FileID,
			req.CreateDate,
			req.CreateDate,
		))
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		out = fromDBModel(d)

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeCreate, auditlog.ClassDocument, out.ID, out.Title, requesterID))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*document.Document, error) {
	d, err := scanDocument(postgres.Conn(ctx, r.db).QueryRow(ctx, SelectActiveDocumentByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(d), nil
}

// Update replaces the metadata of an active document. A zero CreateDate
// keeps the stored one.
func (r *Repository) Update(ctx context.Context, req document.Document, requesterID string) (*document.Document, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, document.ErrTitleRequired
	}
	if req.Language == "" {
		req.Language = document.DefaultLanguage
	}
	var createDate *time.Time
	if !req.CreateDate.IsZero() {
		createDate = &req.CreateDate
	}

	var out *document.Document
	err := postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		d, err := scanDocument(postgres.Conn(ctx, r.db).QueryRow(ctx, UpdateDocumentByID,
			req.Title,
			req.Description,
			req.Subject,
			req.Identifier,
			req.Publisher,
			req.Format,
			req.Source,
			req.Type,
			req.Coverage,
			req.Rights,
			req.Language,
			createDate,
			time.Now(),
			req.ID,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("update document: %w", err)
		}
		out = fromDBModel(d)

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeUpdate, auditlog.ClassDocument, out.ID, out.Title, requesterID))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) UpdateFileID(ctx context.Context, req document.Document) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, UpdateDocumentFileID, req.FileID, req.ID)
	if err != nil {
		return fmt.Errorf("update file id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return document.ErrNotFound
	}

	return nil
}

// Delete soft-deletes the document and its ACLs.
func (r *Repository) Delete(ctx context.Context, id, requesterID string) error {
	return postgres.ExecTx(ctx, r.db, func(ctx context.Context) error {
		db := postgres.Conn(ctx, r.db)
		now := time.Now()

		var title string
		if err := db.QueryRow(ctx, SoftDeleteDocument, now, id).Scan(&title); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return document.ErrNotFound
			}
			return fmt.Errorf("delete document: %w", err)
		}
		if _, err := db.Exec(ctx, SoftDeleteDocumentAcls, now, id); err != nil {
			return fmt.Errorf("delete document acls: %w", err)
		}

		return r.auditor.Create(ctx,
			auditlog.New(auditlog.TypeDelete, auditlog.ClassDocument, id, title, requesterID))
	})
}

func (r *Repository) GetDocumentCount(ctx context.Context) (int64, error) {
	var count int64
	if err := postgres.Conn(ctx, r.db).QueryRow(ctx, CountActiveDocuments).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}

	return count, nil
}

// FindAll pages through active documents ordered by id.
func (r *Repository) FindAll(ctx context.Context, offset, limit int) (document.Documents, error) {
	f := postgres.NewFilter().Where(postgres.NotDeleted)
	query := selectDocuments + f.SQL() + orderDocumentsByID + f.LimitOffset(criteria.NewPage(offset, limit))

	return r.queryDocuments(ctx, query, f.Args()...)
}

func (r *Repository) FindByUserID(ctx context.Context, userID string) (document.Documents, error) {
	return r.queryDocuments(ctx, SelectDocumentsByUserID, userID)
}

func (r *Repository) queryDocuments(ctx context.Context, query string, args ...any) (document.Documents, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select documents: %w", err)
	}
	defer rows.Close()

	var ds Documents
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(ds), nil
}

// GetDocument returns the document only when one of targetIDs holds perm on it.
func (r *Repository) GetDocument(
	ctx context.Context,
	id string,
	perm acl.PermType,
	targetIDs []string,
) (*document.Dto, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}

	d, err := scanDocumentDto(postgres.Conn(ctx, r.db).QueryRow(ctx, SelectDocumentWithPermission, id, string(perm), targetIDs))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	dto := fromDBDto(d)
	return &dto, nil
}

func (r *Repository) FindByCriteria(
	ctx context.Context,
	c document.Criteria,
	page criteria.Page,
	sort criteria.Sort,
) (criteria.PageResult[document.Dto], error) {
	var res criteria.PageResult[document.Dto]
	if len(c.TargetIDs) == 0 {
		return res, nil
	}

	f := postgres.NewFilter().Where("d." + postgres.NotDeleted)
	f.Where(`EXISTS (SELECT 1 FROM acls a WHERE a.source_id = d.id AND a.perm = ` + f.Arg(string(acl.PermRead)) +
		` AND a.target_id = ANY(` + f.Arg(c.TargetIDs) + `) AND a.` + postgres.NotDeleted + `)`)
	if c.Search != "" {
		p := f.Arg(postgres.Contains(c.Search))
		f.Where("(d.title ILIKE " + p + " OR d.description ILIKE " + p + ")")
	}
	if c.Language != "" {
		f.Where("d.language = " + f.Arg(c.Language))
	}
	if c.CreatorID != "" {
		f.Where("d.user_id = " + f.Arg(c.CreatorID))
	}
	if c.CreateDateMin != nil {
		f.Where("d.create_date >= " + f.Arg(*c.CreateDateMin))
	}
	if c.CreateDateMax != nil {
		f.Where("d.create_date <= " + f.Arg(*c.CreateDateMax))
	}
	where := f.SQL()

	db := postgres.Conn(ctx, r.db)
	if err := db.QueryRow(ctx, countDocumentDtos+where, f.Args()...).Scan(&res.Total); err != nil {
		return res, fmt.Errorf("count documents: %w", err)
	}

	query := selectDocumentDtos + where +
		postgres.OrderBy(sort, sortColumns, "d.create_date DESC", "d.id") +
		f.LimitOffset(page)
	rows, err := db.Query(ctx, query, f.Args()...)
	if err != nil {
		return res, fmt.Errorf("find documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDocumentDto(rows)
		if err != nil {
			return res, err
		}
		res.Items = append(res.Items, fromDBDto(d))
	}
	if err = rows.Err(); err != nil {
		return res, err
	}

	return res, nil
}
