package client

import (
	"context"
	"encoding/json"
	"net/http"
)

type ResultService struct {
	Options []RequestOption
}

func NewResultService(opts ...RequestOption) ResultService {
	return ResultService{
		Options: opts,
	}
}

// Get returns the session's last result, or ErrNotFound.
func (r *ResultService) Get(ctx context.Context, opts ...RequestOption) (*Document, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, "GET", c.URL+"/api/result", nil)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result Document

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ResultService) Delete(ctx context.Context, opts ...RequestOption) error {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, "DELETE", c.URL+"/api/result", nil)

	resp, err := c.Client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return convertError(resp)
	}

	return nil
}
