package auditlog

import "time"

type (
	AuditLog struct {
		ID          string
		EntityID    string
		EntityClass string
		Type        string
		Message     string
		UserID      string
		CreateDate  time.Time
	}
	AuditLogs []*AuditLog
)
