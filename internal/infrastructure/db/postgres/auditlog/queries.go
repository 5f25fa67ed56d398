package auditlog

const (
	InsertAuditLog = `
		INSERT INTO audit_logs (id, entity_id, entity_class, type, message, user_id, create_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	selectAuditLogs = `
		SELECT id, entity_id, entity_class, type, message, user_id, create_date
		FROM audit_logs`
	countAuditLogs = `SELECT COUNT(id) FROM audit_logs`
	orderAuditLogs = ` ORDER BY create_date DESC, id`
)
