package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Sort orders query results by a property or a page timestamp.
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

const (
	Ascending  = "ascending"
	Descending = "descending"
)

// QueryRequest is the body of POST /databases/{id}/query.
type QueryRequest struct {
	Filter      any    `json:"filter,omitempty"`
	Sorts       []Sort `json:"sorts,omitempty"`
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Client provides read access to Notion databases.
type Client interface {
	// QueryDatabase issues a single query request and returns one page of
	// results. It never retries.
	QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) (*QueryResponse, error)

	// Available checks whether the API (or relay) answers with the
	// configured credential.
	Available(ctx context.Context) bool
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the given configuration.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg.withDefaults(),
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// errorObject is the body Notion returns with every non-2xx status.
type errorObject struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *httpClient) QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) (*QueryResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	event := CallEvent{Operation: "query_database", DatabaseID: databaseID}

	resp, status, err := c.doQuery(ctx, databaseID, req)
	event.StatusCode = status
	event.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		err = classify(ctx, err)
		event.ErrorCode = errorCode(err)
		c.observer.OnCallComplete(event)
		return nil, err
	}

	event.Success = true
	event.Results = len(resp.Results)
	c.observer.OnCallComplete(event)
	return resp, nil
}

func (c *httpClient) doQuery(ctx context.Context, databaseID string, body QueryRequest) (*QueryResponse, int, error) {
	if strings.TrimSpace(databaseID) == "" {
		return nil, 0, fmt.Errorf("%w: empty database id", ErrUpstream)
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling query: %w", err)
	}

	url := c.endpoint("/databases/" + databaseID + "/query")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(httpReq)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, httpResp.StatusCode, statusError(httpResp.StatusCode, respBody)
	}

	var resp QueryResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &resp, httpResp.StatusCode, nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/users/me"), nil)
	if err != nil {
		return false
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *httpClient) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path
}

func (c *httpClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", c.cfg.Version)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
}

func statusError(status int, body []byte) error {
	se := &StatusError{StatusCode: status}
	var obj errorObject
	if err := json.Unmarshal(body, &obj); err == nil {
		se.Code = obj.Code
		se.Message = errorMessage(obj)
	}
	return se
}

// errorMessage prefers Notion's message and falls back to the relay's
// {"error": "..."} shape.
func errorMessage(obj errorObject) string {
	if obj.Message != "" {
		return obj.Message
	}
	return obj.Error
}

func classify(ctx context.Context, err error) error {
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return err
	case errors.Is(err, ErrInvalidResponse), errors.Is(err, ErrUpstream):
		return err
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return err
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
