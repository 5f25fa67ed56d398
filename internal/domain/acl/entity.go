package acl

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("acl not found")

type (
	PermType   string
	TargetType string
)

const (
	PermRead  PermType = "READ"
	PermWrite PermType = "WRITE"

	TargetUser  TargetType = "USER"
	TargetGroup TargetType = "GROUP"
)

type (
	Acl struct {
		ID         string
		SourceID   string
		Perm       PermType
		TargetID   string
		Type       TargetType
		DeleteDate *time.Time
	}

	// Dto is an ACL entry joined with the target's name.
	Dto struct {
		ID         string
		SourceID   string
		Perm       PermType
		TargetID   string
		TargetName string
		Type       TargetType
	}
)

func (p PermType) Valid() bool { return p == PermRead || p == PermWrite }
func (t TargetType) Valid() bool { return t == TargetUser || t == TargetGroup }
