package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Muratozbk/support-desk/internal/model"
)

// Client pushes tickets to the search service for indexing (best-effort,
// never blocks the API).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client. With an empty baseURL, IndexTicket is a no-op.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// IndexTicketPayload is the body of POST /search/index/ticket.
type IndexTicketPayload struct {
	TicketID    string `json:"ticket_id"`
	Owner       string `json:"owner"`
	Product     string `json:"product"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// IndexTicket sends a ticket to the search service.
func (c *Client) IndexTicket(ctx context.Context, t *model.Ticket) {
	if c.baseURL == "" {
		return
	}
	payload := IndexTicketPayload{
		TicketID:    t.ID,
		Owner:       t.Owner,
		Product:     t.Product,
		Description: t.Description,
		Status:      string(t.Status),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("searchindex: marshal")
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search/index/ticket", bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("searchindex: new request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("searchindex: request")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("ticket_id", t.ID).Msg("searchindex: unexpected status")
	}
}

// IndexTicketAsync runs IndexTicket in its own goroutine.
func (c *Client) IndexTicketAsync(t *model.Ticket) {
	if c.baseURL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.IndexTicket(ctx, t)
	}()
}
