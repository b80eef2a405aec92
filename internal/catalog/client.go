package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrClientNotFound    = errors.New("catalog product not found")
	ErrClientUnavailable = errors.New("catalog unavailable")
	ErrClientBadStatus   = errors.New("catalog bad status")
)

// APIError is a 400 answer from the service, carrying its message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog rejected request (status=%d): %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 3 * time.Second},
	}
}

type ListResult struct {
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

type UpdateResult struct {
	Message   string  `json:"message"`
	Product   Product `json:"product"`
	Changes   Changes `json:"changes"`
	Timestamp string  `json:"timestamp"`
}

// List fetches the catalog. Empty sort and a negative limit are not sent.
func (c *Client) List(ctx context.Context, sort SortField, limit int) (ListResult, error) {
	q := url.Values{}
	if sort != "" {
		q.Set("sort", string(sort))
	}
	if limit >= 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out ListResult
	err := c.do(ctx, http.MethodGet, "/api/products", q, nil, &out)
	return out, err
}

// Search runs a free text query. maxResults <= 0 means no cap.
func (c *Client) Search(ctx context.Context, term string, maxResults int) ([]PublicProduct, error) {
	q := url.Values{"q": {term}}
	if maxResults > 0 {
		q.Set("max_results", strconv.Itoa(maxResults))
	}

	var out struct {
		Products []PublicProduct `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) UpdateByID(ctx context.Context, id int, p Patch) (UpdateResult, error) {
	var out UpdateResult
	err := c.do(ctx, http.MethodPost, "/api/products/"+strconv.Itoa(id), nil, p, &out)
	return out, err
}

func (c *Client) UpdateByName(ctx context.Context, name string, p Patch) (UpdateResult, error) {
	var out UpdateResult
	err := c.do(ctx, http.MethodPost, "/api/products/name/"+url.PathEscape(name), nil, p, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClientUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrClientNotFound
	case http.StatusBadRequest:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrClientBadStatus, resp.StatusCode)
	}
}
