package group

import "time"

type (
	Group struct {
		ID         string
		Name       string
		CreateDate time.Time
		DeleteDate *time.Time
	}

	Member struct {
		UserID   string
		Username string
	}
)
