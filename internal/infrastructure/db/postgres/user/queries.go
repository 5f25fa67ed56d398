package user

import "document-manager-api/internal/infrastructure/db/postgres"

const (
	userColumns = `id, username, password, email, role_id, storage_quota, storage_current, onboarding, totp_key, disable_date, create_date, delete_date`

	SelectUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	SelectActiveUserByUsername = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 AND ` + postgres.NotDeleted
	ExistsActiveUsername = `
		SELECT EXISTS (
		  SELECT 1 FROM users WHERE username = $1 AND ` + postgres.NotDeleted + `
		)
	`
	InsertUser = `
		INSERT INTO users (id, username, password, email, role_id, storage_quota, storage_current, onboarding, totp_key, disable_date, create_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns
	UpdateUserByID = `
		UPDATE users
		SET email = $1,
		    role_id = $2,
		    storage_quota = $3,
		    onboarding = $4,
		    totp_key = $5,
		    disable_date = $6
		WHERE id = $7 AND ` + postgres.NotDeleted + `
		RETURNING ` + userColumns
	UpdateUserPassword = `
		UPDATE users SET password = $1
		WHERE id = $2 AND ` + postgres.NotDeleted
	UpdateUserQuota = `
		UPDATE users SET storage_quota = $1, storage_current = $2
		WHERE id = $3 AND ` + postgres.NotDeleted
	UpdateUserOnboarding = `
		UPDATE users SET onboarding = $1
		WHERE id = $2 AND ` + postgres.NotDeleted
	SoftDeleteUserByUsername = `
		UPDATE users SET delete_date = $1
		WHERE username = $2 AND ` + postgres.NotDeleted + `
		RETURNING id
	`
	SoftDeleteUserDocuments = `
		UPDATE documents SET delete_date = $1
		WHERE user_id = $2 AND ` + postgres.NotDeleted
	SoftDeleteUserAcls = `
		UPDATE acls SET delete_date = $1
		WHERE (target_id = $2 OR source_id IN (SELECT d.id FROM documents d WHERE d.user_id = $2))
		  AND ` + postgres.NotDeleted
	SumActiveStorageCurrent = `SELECT COALESCE(SUM(storage_current), 0)::BIGINT FROM users WHERE ` + postgres.NotDeleted
	CountActiveUsers        = `SELECT COUNT(id) FROM users WHERE ` + postgres.NotDeleted

	selectUserDtos = `
		SELECT u.id, u.username, u.email, u.create_date, u.storage_current, u.storage_quota, u.totp_key, u.disable_date
		FROM users u`
)

// sortColumns maps a sort index to the column at that position of selectUserDtos.
var sortColumns = map[int]string{
	0: "u.id",
	1: "u.username",
	2: "u.email",
	3: "u.create_date",
	4: "u.storage_current",
	5: "u.storage_quota",
	6: "u.totp_key",
	7: "u.disable_date",
}
