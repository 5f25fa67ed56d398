package auditlog

import (
	domain "document-manager-api/internal/domain/auditlog"
)

func fromDBModel(model *AuditLog) domain.AuditLog {
	return domain.AuditLog{
		ID:          model.ID,
		EntityID:    model.EntityID,
		EntityClass: domain.EntityClass(model.EntityClass),
		Type:        domain.Type(model.Type),
		Message:     model.Message,
		UserID:      model.UserID,
		CreateDate:  model.CreateDate,
	}
}

func fromDBModels(models AuditLogs) []domain.AuditLog {
	ls := make([]domain.AuditLog, len(models))
	for idx, l := range models {
		ls[idx] = fromDBModel(l)
	}

	return ls
}
