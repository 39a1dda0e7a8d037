package client

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

var ErrNotFound = errors.New("not found")

func convertError(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if text := strings.TrimSpace(string(data)); text != "" {
		return errors.New(resp.Status + ": " + text)
	}

	return errors.New(resp.Status)
}
