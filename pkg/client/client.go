package client

import (
	"net/http"
	"net/http/cookiejar"
)

// Client talks to the extraction API. Results are scoped to the session
// cookie the server hands out, so one Client is one session.
type Client struct {
	Extractions ExtractionService
	Results     ResultService
}

func New(url string, opts ...RequestOption) *Client {
	jar, _ := cookiejar.New(nil)

	opts = append([]RequestOption{WithClient(&http.Client{Jar: jar})}, opts...)
	opts = append(opts, WithURL(url))

	return &Client{
		Extractions: NewExtractionService(opts...),
		Results:     NewResultService(opts...),
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
