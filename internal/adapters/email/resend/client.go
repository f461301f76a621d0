package resend

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"equimanage-server/internal/platform/httpclient"
	"equimanage-server/internal/ports/email"
)

const apiURL = "https://api.resend.com/emails"

var (
	ErrNotConfigured = errors.New("resend client not configured")
)

// Config del cliente Resend. From debe ser un remitente verificado en
// la cuenta (p.ej. "EquiManage <noreply@equimanage.app>").
type Config struct {
	APIKey string
	From   string

	Timeout time.Duration
}

// Client implementa email.Sender sobre la API HTTP de Resend.
type Client struct {
	http   *httpclient.Client
	apiKey string
	from   string
}

func NewClient(cfg Config) *Client {
	return &Client{
		http:   httpclient.New(cfg.Timeout),
		apiKey: strings.TrimSpace(cfg.APIKey),
		from:   strings.TrimSpace(cfg.From),
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != "" && c.from != ""
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *Client) Send(ctx context.Context, m email.Message) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(m.To) == "" {
		return errors.New("resend: empty recipient")
	}

	return c.http.DoJSON(ctx, http.MethodPost, apiURL, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, sendRequest{
		From:    c.from,
		To:      []string{m.To},
		Subject: m.Subject,
		HTML:    m.HTML,
	}, nil)
}
