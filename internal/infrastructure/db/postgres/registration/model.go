package registration

import "time"

type Registration struct {
	ID         string
	Username   string
	Email      string
	Password   string
	CreateDate time.Time
}
