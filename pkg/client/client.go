// Package client is the Go client for the user directory API. It mirrors the
// server's wire shapes, retries transient failures with exponential backoff,
// and can optionally validate inputs locally before spending a round trip.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"

	"userdir/pkg/domain"
)

const defaultTimeout = 10 * time.Second

// User is a directory record as returned by the API.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserPage is one page of a detailed listing.
type UserPage struct {
	Users   []User `json:"users"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// CreateUserParams is the input to CreateUser.
type CreateUserParams struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// UpdateUserParams is the input to UpdateUser. Nil fields are left unchanged.
type UpdateUserParams struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// ListOptions selects a page of the detailed listing. Zero values fall back to
// server defaults.
type ListOptions struct {
	Page    int
	PerPage int
	Search  string
}

// Health is the server's health report.
type Health struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Cache     string    `json:"cache"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets a bearer token up front, as an alternative to Login.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLocalValidation makes the client run the ID and phone validators before
// sending, turning obviously bad input into an error without a round trip.
func WithLocalValidation() Option {
	return func(c *Client) { c.validateLocally = true }
}

// WithMaxTries bounds retry attempts per request. Minimum 1.
func WithMaxTries(n uint) Option {
	return func(c *Client) {
		if n >= 1 {
			c.maxTries = n
		}
	}
}

// Client talks to a user directory server.
type Client struct {
	baseURL         string
	http            *http.Client
	token           string
	validateLocally bool
	maxTries        uint
}

// New builds a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: defaultTimeout},
		maxTries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login exchanges credentials for a token and attaches it to all subsequent
// requests.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	if c.validateLocally {
		if _, err := domain.ParseNationalID(params.ID); err != nil {
			return User{}, err
		}
		if _, err := domain.ParsePhoneNumber(params.PhoneNumber); err != nil {
			return User{}, err
		}
	}
	var user User
	err := c.do(ctx, http.MethodPost, "/users", params, &user)
	return user, err
}

// GetUser fetches one user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user)
	return user, err
}

// UpdateUser applies a partial update.
func (c *Client) UpdateUser(ctx context.Context, id string, params UpdateUserParams) (User, error) {
	if c.validateLocally && params.PhoneNumber != nil {
		if _, err := domain.ParsePhoneNumber(*params.PhoneNumber); err != nil {
			return User{}, err
		}
	}
	var user User
	err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), params, &user)
	return user, err
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// ListUserIDs returns every stored user ID.
func (c *Client) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := c.do(ctx, http.MethodGet, "/users", nil, &ids)
	return ids, err
}

// ListUsers returns a page of full records.
func (c *Client) ListUsers(ctx context.Context, opts ListOptions) (UserPage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	path := "/users-detailed"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var page UserPage
	err := c.do(ctx, http.MethodGet, path, nil, &page)
	return page, err
}

// Health fetches the server's health report.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &h)
	return h, err
}

// do runs one request with retries. 429 and 5xx responses and transport
// failures retry with exponential backoff; everything else is final.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	op := func() (struct{}, error) {
		err := c.doOnce(ctx, method, path, payload, out)
		if err != nil && !retryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxInterval = 2 * time.Second

	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(c.maxTries),
	)
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func retryable(err error) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	// Transport-level failure: the server never answered.
	return true
}
