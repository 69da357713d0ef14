package resend

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/nabrah/usage-alert-service/config"
	"github.com/nabrah/usage-alert-service/internal/domain/model"
)

type emailDTO struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html,omitempty"`
}

type sendResponseDTO struct {
	ID string `json:"id"`
}

// Client delivers composed messages through the Resend API. Delivery is
// fire-and-forget: one bounded attempt, outcome reported to the caller.
type Client struct {
	http   *resty.Client
	sender string
}

func New(cfg *config.Config) *Client {
	http := resty.New().
		SetBaseURL(cfg.Resend.BaseURL).
		SetAuthToken(cfg.Resend.APIKey).
		SetTimeout(cfg.Resend.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, sender: cfg.Sender}
}

// Send posts one email. At most one attempt; callers decide what a failure
// means.
func (c *Client) Send(ctx context.Context, to string, msg model.Message) error {
	if to == "" {
		return errors.New("resend: empty recipient")
	}

	var out sendResponseDTO

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetBody(emailDTO{
			From:    c.sender,
			To:      []string{to},
			Subject: msg.Subject,
			Text:    msg.Text,
			HTML:    msg.HTML,
		}).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("resend: send to %q: %w", to, err)
	}
	if resp.IsError() {
		return fmt.Errorf("resend: send to %q: unexpected status %s", to, resp.Status())
	}

	return nil
}

// Close releases pooled connections.
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}
