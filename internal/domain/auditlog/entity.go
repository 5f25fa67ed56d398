package auditlog

import "time"

type (
	Type        string
	EntityClass string
)

const (
	TypeCreate Type = "CREATE"
	TypeUpdate Type = "UPDATE"
	TypeDelete Type = "DELETE"

	ClassUser     EntityClass = "User"
	ClassDocument EntityClass = "Document"
	ClassAcl      EntityClass = "Acl"
	ClassGroup    EntityClass = "Group"
)

type (
	AuditLog struct {
		ID          string
		EntityID    string
		EntityClass EntityClass
		Type        Type
		Message     string
		UserID      string
		CreateDate  time.Time
	}
	AuditLogs []*AuditLog

	Criteria struct {
		EntityID string
		UserID   string
	}
)

// New builds an entry for a change made by userID; an empty userID
// records the system as the author.
func New(t Type, class EntityClass, entityID, message, userID string) AuditLog {
	if userID == "" {
		userID = "system"
	}
	return AuditLog{
		EntityID:    entityID,
		EntityClass: class,
		Type:        t,
		Message:     message,
		UserID:      userID,
	}
}
