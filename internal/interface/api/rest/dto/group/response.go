package group

import "time"

type (
	Group struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		CreateDate time.Time `json:"create_date"`
	}
	ResponseData struct {
		Data []Group `json:"data"`
	}
	Member struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	Members struct {
		Data []Member `json:"data"`
	}
)
