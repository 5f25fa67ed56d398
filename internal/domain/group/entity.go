package group

import (
	"errors"
	"time"
)

var (
	ErrAlreadyExistingName = errors.New("AlreadyExistingGroup")
	ErrNotFound            = errors.New("group not found")
	ErrMemberNotFound      = errors.New("group member not found")
)

type (
	Group struct {
		ID         string
		Name       string
		CreateDate time.Time
		DeleteDate *time.Time
	}

	// Member is an active user belonging to a group.
	Member struct {
		UserID   string
		Username string
	}
)
