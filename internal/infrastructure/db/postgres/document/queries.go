package document

import "document-manager-api/internal/infrastructure/db/postgres"

const (
	documentColumns = `id, user_id, title, description, language, subject, identifier, publisher, format, source, type, coverage, rights, file_id, create_date, update_date, delete_date`

	SelectActiveDocumentByID = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1 AND ` + postgres.NotDeleted
	InsertDocument = `
		INSERT INTO documents (id, user_id, title, description, language, subject, identifier, publisher, format, source, type, coverage, rights, file_id, create_date, update_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + documentColumns
	UpdateDocumentByID = `
		UPDATE documents
		SET title = $1,
		    description = $2,
		    subject = $3,
		    identifier = $4,
		    publisher = $5,
		    format = $6,
		    source = $7,
		    type = $8,
		    coverage = $9,
		    rights = $10,
		    language = $11,
		    create_date = COALESCE($12, create_date),
		    update_date = $13
		WHERE id = $14 AND ` + postgres.NotDeleted + `
		RETURNING ` + documentColumns
	UpdateDocumentFileID = `
		UPDATE documents SET file_id = $1
		WHERE id = $2 AND ` + postgres.NotDeleted
	SoftDeleteDocument = `
		UPDATE documents SET delete_date = $1
		WHERE id = $2 AND ` + postgres.NotDeleted + `
		RETURNING title
	`
	SoftDeleteDocumentAcls = `
		UPDATE acls SET delete_date = $1
		WHERE source_id = $2 AND ` + postgres.NotDeleted
	CountActiveDocuments    = `SELECT COUNT(id) FROM documents WHERE ` + postgres.NotDeleted
	SelectDocumentsByUserID = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE user_id = $1 AND ` + postgres.NotDeleted + `
		ORDER BY create_date, id
	`
	SelectDocumentWithPermission = selectDocumentDtos + `
		WHERE d.id = $1 AND d.` + postgres.NotDeleted + `
		  AND EXISTS (
		    SELECT 1 FROM acls a
		    WHERE a.source_id = d.id AND a.perm = $2 AND a.target_id = ANY($3) AND a.` + postgres.NotDeleted + `
		  )
	`

	selectDocuments = `
		SELECT ` + documentColumns + `
		FROM documents`
	orderDocumentsByID = ` ORDER BY id`

	selectDocumentDtos = `
		SELECT d.id, d.title, d.description, d.language, d.subject, d.identifier, d.publisher, d.format,
		       d.source, d.type, d.coverage, d.rights, d.file_id, d.user_id, u.username, d.create_date, d.update_date
		FROM documents d
		JOIN users u ON u.id = d.user_id`
	countDocumentDtos = `
		SELECT COUNT(d.id)
		FROM documents d
		JOIN users u ON u.id = d.user_id`
)

var sortColumns = map[int]string{
	0: "d.id",
	1: "d.title",
	2: "d.description",
	3: "d.create_date",
	4: "d.language",
	7: "u.username",
	8: "d.update_date",
}
