package auditlog

import (
	"time"

	"document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/criteria"
)

type (
	AuditLog struct {
		ID          string    `json:"id"`
		EntityID    string    `json:"entity_id"`
		EntityClass string    `json:"entity_class"`
		Type        string    `json:"type"`
		Message     string    `json:"message"`
		UserID      string    `json:"user_id"`
		CreateDate  time.Time `json:"create_date"`
	}
	Page struct {
		Total int64      `json:"total"`
		Logs  []AuditLog `json:"logs"`
	}
)

func ToResponsePage(p criteria.PageResult[auditlog.AuditLog]) Page {
	logs := make([]AuditLog, len(p.Items))
	for idx, l := range p.Items {
		logs[idx] = AuditLog{
			ID:          l.ID,
			EntityID:    l.EntityID,
			EntityClass: string(l.EntityClass),
			Type:        string(l.Type),
			Message:     l.Message,
			UserID:      l.UserID,
			CreateDate:  l.CreateDate,
		}
	}

	return Page{Total: p.Total, Logs: logs}
}
