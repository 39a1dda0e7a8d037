package client

import (
	"net/http"
	"strings"
)

type RequestConfig struct {
	URL string

	Client *http.Client
}

type RequestOption = func(*RequestConfig)

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = strings.TrimRight(url, "/")
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}
