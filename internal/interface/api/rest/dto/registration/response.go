package registration

import "time"

type (
	Registration struct {
		Username   string    `json:"username"`
		Email      string    `json:"email"`
		CreateDate time.Time `json:"create_date"`
	}
	ResponseData struct {
		Data []Registration `json:"data"`
	}
)
