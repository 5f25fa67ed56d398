package registration

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("registration not found")

// Registration is a self-service signup waiting for an administrator.
// Password holds the bcrypt hash.
type Registration struct {
	ID         string
	Username   string
	Email      string
	Password   string
	CreateDate time.Time
}
