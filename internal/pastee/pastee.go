// Package pastee is a small client for the paste.ee v1 API. Long list
// results go out as a paste link instead of a wall of text.
package pastee

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrPasteFailed wraps any failure to create a paste.
var ErrPasteFailed = errors.New("pastee: create failed")

const defaultBaseURL = "https://api.paste.ee/v1"

// Client talks to the paste.ee API.
type Client struct {
	key     string
	baseURL string
	client  *http.Client
}

// New builds a client with the given API key. Requests retry with backoff
// on transient failures.
func New(key string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.Logger = nil
	return &Client{
		key:     key,
		baseURL: defaultBaseURL,
		client:  retryClient.StandardClient(),
	}
}

// NewWithBaseURL builds a client against a different endpoint (for testing).
func NewWithBaseURL(key, baseURL string) *Client {
	c := New(key)
	c.baseURL = baseURL
	return c
}

type pasteRequest struct {
	Description string         `json:"description"`
	Sections    []pasteSection `json:"sections"`
}

type pasteSection struct {
	Name     string `json:"name"`
	Contents string `json:"contents"`
}

type pasteResponse struct {
	Link string `json:"link"`
}

// Create uploads content as a new paste and returns its link.
func (c *Client) Create(ctx context.Context, content string) (string, error) {
	body, err := json.Marshal(pasteRequest{
		Description: "A very cool table of Jumpedia information!",
		Sections: []pasteSection{
			{Name: "Jumpedia results:", Contents: content},
		},
	})
	if err != nil {
		return "", fmt.Errorf("serialize paste: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pastes", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Auth-Token", c.key)

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPasteFailed, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: status=%d", ErrPasteFailed, res.StatusCode)
	}

	var parsed pasteResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrPasteFailed, err)
	}
	return parsed.Link, nil
}
