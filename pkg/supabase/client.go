// Package supabase provides a thin client over the Supabase REST (PostgREST)
// and auth APIs. The backend uses the service key for all table access;
// per-user authorization happens at the service layer.
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		URL:        baseURL,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{},
	}
}

// do executes a REST request against a table and returns the response body.
// filters become query parameters (PostgREST operator syntax, e.g. "eq.<id>"),
// payload is JSON-encoded when non-nil, and prefer sets the Prefer header.
func (c *Client) do(method, table string, filters map[string]string, payload interface{}, prefer string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	for key, value := range filters {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// Query selects rows from a table using PostgREST filters.
// No limit is applied unless the caller passes one explicitly.
func (c *Client) Query(table string, filters map[string]string) ([]byte, error) {
	return c.do(http.MethodGet, table, filters, nil, "")
}

// Insert inserts one or more rows into a table and returns the created rows
func (c *Client) Insert(table string, data interface{}) ([]byte, error) {
	return c.do(http.MethodPost, table, nil, data, "return=representation")
}

// Upsert inserts or updates rows, detecting conflicts on the given columns
// (e.g. "user_id,date"). Existing rows are merged, not duplicated.
func (c *Client) Upsert(table string, data interface{}, onConflict string) ([]byte, error) {
	filters := map[string]string{"on_conflict": onConflict}
	return c.do(http.MethodPost, table, filters, data, "return=representation,resolution=merge-duplicates")
}

// DeleteWhere deletes all rows matching the filters. Deleting zero rows is
// not an error; PostgREST returns 204 either way.
func (c *Client) DeleteWhere(table string, filters map[string]string) error {
	_, err := c.do(http.MethodDelete, table, filters, nil, "")
	return err
}

// User represents a Supabase auth user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken verifies a JWT token with the Supabase auth API and returns
// the user it belongs to
func (c *Client) VerifyToken(token string) (*User, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}
