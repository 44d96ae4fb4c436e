package ado

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dr-neptune/ado-cli/internal/config"
)

const apiVersion = "7.1"

// Client is an Azure DevOps work item REST API client.
type Client struct {
	baseURL    string
	project    string
	authHeader string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client from the given config. PAT auth uses Basic with
// an empty username, so the credential is ":" + token. The header is
// computed once and never logged.
func New(cfg config.Config) *Client {
	creds := base64.StdEncoding.EncodeToString([]byte(":" + cfg.Token))
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		project:    cfg.Project,
		authHeader: "Basic " + creds,
		httpClient: &http.Client{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger installs a logger for request-level debug output.
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// RunQuery executes a WIQL query and returns the matching work item
// IDs in result order. An empty or absent workItems array is an empty
// result, not an error.
func (c *Client) RunQuery(ctx context.Context, query string) ([]int, error) {
	endpoint := c.apiURL("wiql")

	body, err := c.post(ctx, endpoint, "application/json", WiqlRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}

	var result WiqlResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding query response: %w (body: %s)", err, snippet(body))
	}

	ids := make([]int, 0, len(result.WorkItems))
	for _, ref := range result.WorkItems {
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

// FetchBatch retrieves the given fields for a set of work item IDs in
// a single round trip. An empty id set short-circuits: no request is
// issued and an empty result is returned.
func (c *Client) FetchBatch(ctx context.Context, ids []int, fields []string) ([]WorkItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	endpoint := c.apiURL("workitemsbatch")
	req := BatchRequest{IDs: ids, Fields: fields, Expand: "None"}

	body, err := c.post(ctx, endpoint, "application/json", req)
	if err != nil {
		return nil, fmt.Errorf("fetching work items: %w", err)
	}

	var result BatchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding batch response: %w (body: %s)", err, snippet(body))
	}
	if result.Value == nil {
		return nil, &ShapeError{Missing: "value", Body: body}
	}
	return result.Value, nil
}

// GetWorkItem fetches a single work item with the display field set.
func (c *Client) GetWorkItem(ctx context.Context, id int) (WorkItem, error) {
	items, err := c.FetchBatch(ctx, []int{id}, DisplayFields)
	if err != nil {
		return WorkItem{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return WorkItem{}, &ShapeError{
		Missing: "id",
		Body:    []byte(fmt.Sprintf("batch response has no work item %d", id)),
	}
}

// Create submits a new work item of the given type as a JSON-patch
// document and returns the identifier the service assigned. A 2xx
// response without an id is a shape error, not a transport failure.
func (c *Client) Create(ctx context.Context, workItemType string, ops []PatchOp) (int, error) {
	endpoint := fmt.Sprintf("%s/%s/_apis/wit/workitems/$%s?api-version=%s",
		c.baseURL, url.PathEscape(c.project), url.PathEscape(workItemType), apiVersion)

	body, err := c.post(ctx, endpoint, "application/json-patch+json", ops)
	if err != nil {
		return 0, fmt.Errorf("creating work item: %w", err)
	}

	var created struct {
		ID *int `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, fmt.Errorf("decoding create response: %w (body: %s)", err, snippet(body))
	}
	if created.ID == nil {
		return 0, &ShapeError{Missing: "id", Body: body}
	}
	return *created.ID, nil
}

// Update applies a JSON-patch document to an existing work item and
// returns the updated item, including the new revision. No revision
// precondition is enforced here; last writer wins unless the caller
// checks first.
func (c *Client) Update(ctx context.Context, id int, ops []PatchOp) (WorkItem, error) {
	endpoint := fmt.Sprintf("%s/%s/_apis/wit/workitems/%d?api-version=%s",
		c.baseURL, url.PathEscape(c.project), id, apiVersion)

	body, err := c.do(ctx, http.MethodPatch, endpoint, "application/json-patch+json", ops)
	if err != nil {
		return WorkItem{}, fmt.Errorf("updating work item %d: %w", id, err)
	}

	var item WorkItem
	if err := json.Unmarshal(body, &item); err != nil {
		return WorkItem{}, fmt.Errorf("decoding update response: %w (body: %s)", err, snippet(body))
	}
	return item, nil
}

func (c *Client) apiURL(resource string) string {
	return fmt.Sprintf("%s/%s/_apis/wit/%s?api-version=%s",
		c.baseURL, url.PathEscape(c.project), resource, apiVersion)
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, payload any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, endpoint, contentType, payload)
}

// do issues one authenticated request and returns the raw response
// body. Non-2xx statuses become a StatusError carrying the body; a 2xx
// with no body at all becomes ErrEmptyResponse.
func (c *Client) do(ctx context.Context, method, endpoint, contentType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("request", "method", method, "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("response", "method", method, "url", endpoint, "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: body}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}
	return body, nil
}

// snippet truncates a response body for inclusion in error messages.
func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
