// Package webstore syncs books against a REST key-value bin service
// (jsonbin and the like). A book lives at {base}/{key}: PUT upserts it,
// GET retrieves it.
//
// Bin services rarely return the stored document bare. Most wrap it in
// an envelope, jsonbin for instance answers {"record": {...},
// "metadata": {...}}. Config.Envelope is a jsonpath to the book inside
// that envelope, "$.record" for jsonbin, empty for services that
// return the document as-is.
package webstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/go-resty/resty/v2"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// Client implements accounting.Store over a key-value bin service.
type Client struct {
	http     *resty.Client
	envelope string
}

// Config carries the connection settings for a bin service.
type Config struct {
	BaseURL  string        // e.g. https://api.jsonbin.io/v3/b
	APIKey   string        // sent as X-Access-Key when set
	Envelope string        // jsonpath to the book in GET responses, e.g. $.record
	Timeout  time.Duration // defaults to 15s
}

// New builds a bin service client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("webstore: base url required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if cfg.APIKey != "" {
		httpClient.SetHeader("X-Access-Key", cfg.APIKey)
	}

	return &Client{http: httpClient, envelope: cfg.Envelope}, nil
}

// Push stores data under key, creating or replacing the bin.
func (c *Client) Push(ctx context.Context, key string, data []byte) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(data).
		Put("/" + url.PathEscape(key))
	if err != nil {
		return fmt.Errorf("push %q: %w", key, err)
	}
	if resp.IsError() {
		return fmt.Errorf("push %q: %s", key, resp.Status())
	}
	return nil
}

// Pull retrieves the book stored under key, unwrapping the service
// envelope when one is configured. A missing bin is reported as
// accounting.ErrNotFound.
func (c *Client) Pull(ctx context.Context, key string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/" + url.PathEscape(key))
	if err != nil {
		return nil, fmt.Errorf("pull %q: %w", key, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("pull %q: %w", key, accounting.ErrNotFound)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("pull %q: %s", key, resp.Status())
	}
	if c.envelope == "" {
		return resp.Body(), nil
	}
	return unwrap(c.envelope, resp.Body())
}

// unwrap extracts the document at path from a response envelope.
func unwrap(path string, body []byte) ([]byte, error) {
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, fmt.Errorf("unwrap %q: %w", path, err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("unwrap %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return json.Marshal(jval)
}
