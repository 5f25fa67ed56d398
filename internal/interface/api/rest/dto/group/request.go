package group

type Request struct {
	Name string `json:"name"`
}
