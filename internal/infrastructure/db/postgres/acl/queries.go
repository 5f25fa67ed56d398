package acl

import "document-manager-api/internal/infrastructure/db/postgres"

const (
	InsertAcl = `
		INSERT INTO acls (id, source_id, perm, target_id, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, source_id, perm, target_id, type, delete_date
	`
	SelectAclsBySource = `
		SELECT a.id, a.source_id, a.perm, a.target_id, COALESCE(u.username, g.name, ''), a.type
		FROM acls a
		LEFT JOIN users u ON u.id = a.target_id AND a.type = 'USER' AND u.` + postgres.NotDeleted + `
		LEFT JOIN groups g ON g.id = a.target_id AND a.type = 'GROUP' AND g.` + postgres.NotDeleted + `
		WHERE a.source_id = $1 AND a.` + postgres.NotDeleted + `
		ORDER BY a.perm, a.target_id
	`
	CheckAclPermission = `
		SELECT EXISTS (
		  SELECT 1 FROM acls
		  WHERE source_id = $1 AND perm = $2 AND target_id = ANY($3) AND ` + postgres.NotDeleted + `
		)
	`
	SoftDeleteAcl = `
		UPDATE acls SET delete_date = $1
		WHERE source_id = $2 AND perm = $3 AND target_id = $4 AND ` + postgres.NotDeleted + `
		RETURNING id
	`
)
