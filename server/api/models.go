package api

type Document struct {
	Text string `json:"text"`
}
