package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kiosk404/spycats/pkg/utils/json"
)

// DefaultBaseURL is used when no HQ address is configured.
const DefaultBaseURL = "http://localhost:8000"

// API is the request contract between the dashboard and HQ.
type API interface {
	ListCats(ctx context.Context) ([]Cat, error)
	GetCat(ctx context.Context, id string) (Cat, error)
	CreateCat(ctx context.Context, req CreateCatRequest) (Cat, error)
	UpdateSalary(ctx context.Context, id string, salary float64) (Cat, error)
	DeleteCat(ctx context.Context, id string) (DeleteResult, error)
}

// Client is the HTTP client for the HQ /v1 API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ API = (*Client)(nil)

// NewClient creates a new client. A nil httpClient gets a 30s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
	}
}

// ListCats fetches every record in HQ order.
func (c *Client) ListCats(ctx context.Context) ([]Cat, error) {
	cats := []Cat{}
	if err := c.do(ctx, http.MethodGet, "/v1/cats", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// GetCat fetches one record.
func (c *Client) GetCat(ctx context.Context, id string) (Cat, error) {
	var cat Cat
	err := c.do(ctx, http.MethodGet, catPath(id), nil, &cat)
	return cat, err
}

// CreateCat asks HQ to create a record and returns it as stored.
func (c *Client) CreateCat(ctx context.Context, req CreateCatRequest) (Cat, error) {
	var cat Cat
	err := c.do(ctx, http.MethodPost, "/v1/cats", req, &cat)
	return cat, err
}

// UpdateSalary changes the salary of a record and returns it as stored.
func (c *Client) UpdateSalary(ctx context.Context, id string, salary float64) (Cat, error) {
	var cat Cat
	err := c.do(ctx, http.MethodPatch, catPath(id)+"/salary", updateSalaryRequest{Salary: salary}, &cat)
	return cat, err
}

// DeleteCat removes a record.
func (c *Client) DeleteCat(ctx context.Context, id string) (DeleteResult, error) {
	var res DeleteResult
	err := c.do(ctx, http.MethodDelete, catPath(id), nil, &res)
	return res, err
}

func catPath(id string) string {
	return "/v1/cats/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &UnexpectedError{Message: "Failed to encode request", Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return &UnexpectedError{Message: "Failed to create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &UnexpectedError{Message: "Failed to reach HQ", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UnexpectedError{StatusCode: resp.StatusCode, Message: "Failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &UnexpectedError{StatusCode: resp.StatusCode, Message: "Invalid response from HQ", Err: err}
	}
	return nil
}

// decodeError maps an HQ error response onto the client error taxonomy.
func decodeError(status int, data []byte) error {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return &UnexpectedError{StatusCode: status, Message: fmt.Sprintf("HTTP %d", status)}
	}

	switch {
	case status == http.StatusNotFound:
		return &NotFoundError{Message: eb.Message}
	case status == http.StatusBadRequest && len(eb.Errors) > 0:
		return &ValidationError{Message: eb.Message, Fields: eb.Errors}
	case status == http.StatusBadRequest:
		return &ValidationError{Message: eb.Message}
	default:
		return &UnexpectedError{StatusCode: status, Message: eb.Message}
	}
}
