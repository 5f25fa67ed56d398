package acl

import "time"

type (
	Acl struct {
		ID         string
		SourceID   string
		Perm       string
		TargetID   string
		Type       string
		DeleteDate *time.Time
	}

	AclDto struct {
		ID         string
		SourceID   string
		Perm       string
		TargetID   string
		TargetName string
		Type       string
	}
)
