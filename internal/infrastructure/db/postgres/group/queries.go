package group

import "document-manager-api/internal/infrastructure/db/postgres"

const (
	groupColumns = `id, name, create_date, delete_date`

	InsertGroup = `
		INSERT INTO groups (id, name, create_date)
		VALUES ($1, $2, $3)
		RETURNING ` + groupColumns + `
	`
	ExistsActiveGroupName = `
		SELECT EXISTS (SELECT 1 FROM groups WHERE name = $1 AND ` + postgres.NotDeleted + `)
	`
	SelectActiveGroupByName = `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE name = $1 AND ` + postgres.NotDeleted + `
	`
	SelectActiveGroups = `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE ` + postgres.NotDeleted + `
		ORDER BY name
	`
	SoftDeleteGroup = `
		UPDATE groups SET delete_date = $1
		WHERE name = $2 AND ` + postgres.NotDeleted + `
		RETURNING id
	`
	SoftDeleteGroupMembers = `
		UPDATE user_groups SET delete_date = $1
		WHERE group_id = $2 AND ` + postgres.NotDeleted + `
	`
	SoftDeleteGroupAcls = `
		UPDATE acls SET delete_date = $1
		WHERE target_id = $2 AND type = 'GROUP' AND ` + postgres.NotDeleted + `
	`
	InsertGroupMember = `
		INSERT INTO user_groups (id, group_id, user_id, create_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (group_id, user_id) WHERE ` + postgres.NotDeleted + ` DO NOTHING
	`
	SoftDeleteGroupMember = `
		UPDATE user_groups SET delete_date = $1
		WHERE group_id = $2 AND user_id = $3 AND ` + postgres.NotDeleted + `
	`
	SelectGroupMembers = `
		SELECT u.id, u.username
		FROM user_groups ug
		JOIN users u ON u.id = ug.user_id AND u.` + postgres.NotDeleted + `
		WHERE ug.group_id = $1 AND ug.` + postgres.NotDeleted + `
		ORDER BY u.username
	`
	SelectGroupIDsByUserID = `
		SELECT ug.group_id
		FROM user_groups ug
		JOIN groups g ON g.id = ug.group_id AND g.` + postgres.NotDeleted + `
		WHERE ug.user_id = $1 AND ug.` + postgres.NotDeleted + `
	`
)
