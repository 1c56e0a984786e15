// Package client is a Go client for the support-desk API. It mirrors what
// the web frontend does: it holds the authenticated session (created at
// login/register, read by every protected call, cleared at logout), caches
// the last known session on disk, and exposes an Action container for
// pending/fulfilled/rejected request state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// User mirrors the API's user resource.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ticket mirrors the API's ticket resource.
type Ticket struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Product     string    `json:"product"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Note mirrors the API's note resource.
type Note struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TicketPatch selects the fields to change on update. Nil fields are left
// untouched.
type TicketPatch struct {
	Product     *string `json:"product,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status    int    `json:"-"`
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to the support-desk API. The session it holds is the source
// of truth; the optional on-disk cache only restores the last known session
// across restarts.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *SessionCache

	session *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithSessionCache restores the last cached session at construction and
// keeps the cache in sync on login, register and logout.
func WithSessionCache(cache *SessionCache) Option {
	return func(c *Client) { c.cache = cache }
}

// New creates a client for the API at baseURL (for example
// "http://localhost:8095").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache != nil {
		if s, err := c.cache.Load(); err == nil && s != nil {
			c.session = s
		}
	}
	return c
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session {
	return c.session
}

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/users",
		credentialsRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return c.startSession(resp), nil
}

// Login authenticates and starts a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/users/login",
		credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return c.startSession(resp), nil
}

// Logout clears the session and the cached copy.
func (c *Client) Logout() {
	c.session = nil
	if c.cache != nil {
		_ = c.cache.Clear()
	}
}

// Me fetches the account of the current session.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Tickets lists the caller's tickets.
func (c *Client) Tickets(ctx context.Context) ([]Ticket, error) {
	var out []Ticket
	if err := c.do(ctx, http.MethodGet, "/api/v1/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ticket fetches one owned ticket.
func (c *Client) Ticket(ctx context.Context, id string) (*Ticket, error) {
	var t Ticket
	if err := c.do(ctx, http.MethodGet, "/api/v1/tickets/"+id, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

type createTicketRequest struct {
	Product     string `json:"product"`
	Description string `json:"description"`
}

// CreateTicket opens a new ticket.
func (c *Client) CreateTicket(ctx context.Context, product, description string) (*Ticket, error) {
	var t Ticket
	err := c.do(ctx, http.MethodPost, "/api/v1/tickets",
		createTicketRequest{Product: product, Description: description}, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTicket applies a partial update.
func (c *Client) UpdateTicket(ctx context.Context, id string, patch TicketPatch) (*Ticket, error) {
	var t Ticket
	if err := c.do(ctx, http.MethodPut, "/api/v1/tickets/"+id, patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CloseTicket closes a ticket; closing twice is not an error.
func (c *Client) CloseTicket(ctx context.Context, id string) (*Ticket, error) {
	var t Ticket
	if err := c.do(ctx, http.MethodPut, "/api/v1/tickets/"+id+"/close", nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTicket removes a ticket and its notes.
func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tickets/"+id, nil, nil)
}

// Notes lists the notes of an owned ticket.
func (c *Client) Notes(ctx context.Context, ticketID string) ([]Note, error) {
	var out []Note
	if err := c.do(ctx, http.MethodGet, "/api/v1/tickets/"+ticketID+"/notes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createNoteRequest struct {
	Text string `json:"text"`
}

// AddNote attaches a note to an owned ticket.
func (c *Client) AddNote(ctx context.Context, ticketID, text string) (*Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPost, "/api/v1/tickets/"+ticketID+"/notes",
		createNoteRequest{Text: text}, &n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) startSession(resp authResponse) *Session {
	s := &Session{User: resp.User, Token: resp.Token}
	c.session = s
	if c.cache != nil {
		_ = c.cache.Save(s)
	}
	return s
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses come back as *APIError. Nothing is retried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s := c.session; s != nil {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Code = "unknown"
			apiErr.Message = resp.Status
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
