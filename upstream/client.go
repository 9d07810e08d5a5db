package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/littleboyzz/Billiard-Plus-App/models"
)

// envelope mirrors the source service's response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the remote table/area service, the system of record for
// tables and areas. Every call is bounded by the http client timeout on
// top of the caller's context.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListAreas fetches the venue's service areas in display order.
func (c *Client) ListAreas(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	if err := c.getJSON(ctx, "/areas", nil, &areas); err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	return areas, nil
}

// ListTables fetches the active tables in the source's display order.
// Soft-deleted tables are filtered server-side; the registry drops any
// that slip through anyway.
func (c *Client) ListTables(ctx context.Context) ([]models.Table, error) {
	query := url.Values{}
	query.Set("active", "true")
	query.Set("sort", "display_order")

	var tables []models.Table
	if err := c.getJSON(ctx, "/tables", query, &tables); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	if !env.Status {
		return fmt.Errorf("%s: source rejected request: %s", path, env.Message)
	}
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
