// Package reqres is a thin client for the reqres.in demo REST API.
//
// Non-success statuses come back as response envelopes so callers can decide
// how to surface them. Only transport failures and undecodable success bodies
// are returned as errors. Nothing is retried.
package reqres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const DefaultBaseURL = "https://reqres.in/api"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Options configures a Client. The zero value talks to DefaultBaseURL.
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	// Transport is the innermost round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
}

func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	chain := NewTransport(opts.Transport)
	if opts.UserAgent != "" {
		chain.Use(UserAgent(opts.UserAgent))
	}
	if opts.APIKey != "" {
		chain.Use(APIKey(opts.APIKey))
	}
	chain.Use(LogRequests())

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Transport: chain},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func decode(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Authenticate posts the credentials to /login.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/login", Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := &LoginResponse{Status: resp.StatusCode}
	var payload struct {
		Token string `json:"token"`
		Error string `json:"error"`
	}
	if resp.StatusCode == http.StatusOK {
		if err := decode(resp, &payload); err != nil {
			return nil, err
		}
	} else {
		// Error bodies are best effort; the status alone decides the outcome.
		_ = json.NewDecoder(resp.Body).Decode(&payload)
	}
	out.Token = payload.Token
	out.Error = payload.Error
	return out, nil
}

// ListUsers fetches one page of the user listing.
func (c *Client) ListUsers(ctx context.Context, page int) (*ListResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/users?page="+strconv.Itoa(page), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := &ListResponse{Status: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		return out, nil
	}

	var payload struct {
		Page       int    `json:"page"`
		PerPage    int    `json:"per_page"`
		Total      int    `json:"total"`
		TotalPages int    `json:"total_pages"`
		Data       []User `json:"data"`
	}
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}
	out.Page = payload.Page
	out.PerPage = payload.PerPage
	out.Total = payload.Total
	out.TotalPages = payload.TotalPages
	out.Users = payload.Data
	return out, nil
}

// FetchUser fetches a single user record.
func (c *Client) FetchUser(ctx context.Context, id int) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, userPath(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := &UserResponse{Status: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		return out, nil
	}

	var payload struct {
		Data User `json:"data"`
	}
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}
	out.User = payload.Data
	return out, nil
}

// UpdateUser replaces the editable fields of a user record.
func (c *Client) UpdateUser(ctx context.Context, id int, update UserUpdate) (*UpdateResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, userPath(id), update)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := &UpdateResponse{Status: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		return out, nil
	}

	if err := decode(resp, &out.User); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser deletes a user record. Success is signalled by 204 No Content.
func (c *Client) DeleteUser(ctx context.Context, id int) (*DeleteResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, userPath(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return &DeleteResponse{Status: resp.StatusCode}, nil
}

func userPath(id int) string {
	return "/users/" + strconv.Itoa(id)
}
