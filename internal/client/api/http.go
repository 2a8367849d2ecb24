package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nichedigital/leaddesk/internal/client/models"
)

// HTTPClient implements Client over the backend's HTTP+JSON contract.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetCredentials(username, password string) {
	c.token = base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

func (c *HTTPClient) ClearCredentials() {
	c.token = ""
}

// detailBody is the backend's error envelope.
type detailBody struct {
	Detail string `json:"detail"`
}

func readDetail(body []byte, fallback string) string {
	var d detailBody
	if err := json.Unmarshal(body, &d); err == nil && d.Detail != "" {
		return d.Detail
	}
	return fallback
}

// do issues the request, attaches the basic token when authed, and maps
// transport failures and error statuses onto the package's error set.
// On 2xx it returns the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, payload any, authed bool) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Basic "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransport(err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{Detail: readDetail(body, "Too many requests")}
	case resp.StatusCode == http.StatusBadRequest:
		return nil, &ValidationError{Detail: readDetail(body, "Invalid request")}
	default:
		return nil, fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	}
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, nil, true)
	if err != nil {
		return nil, err
	}
	var stats models.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &stats, nil
}

// ListSubmissions builds the listing query. Empty search/status are omitted
// entirely; the backend treats absence as "no filter".
func (c *HTTPClient) ListSubmissions(ctx context.Context, page, limit int, search string, status models.Status) (*models.ListResult, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if search != "" {
		q.Set("search", search)
	}
	if status != "" {
		q.Set("status", string(status))
	}

	body, err := c.do(ctx, http.MethodGet, "/api/admin/submissions", q, nil, true)
	if err != nil {
		return nil, err
	}
	var res models.ListResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return &res, nil
}

func (c *HTTPClient) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	payload := map[string]models.Status{"status": status}
	_, err := c.do(ctx, http.MethodPut, "/api/admin/submissions/"+url.PathEscape(id)+"/status", nil, payload, true)
	return err
}

func (c *HTTPClient) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/admin/submissions/export", nil, nil, true)
}

func (c *HTTPClient) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.ContactResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/contact", nil, req, false)
	if err != nil {
		return nil, err
	}
	var res models.ContactResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode contact response: %w", err)
	}
	return &res, nil
}
