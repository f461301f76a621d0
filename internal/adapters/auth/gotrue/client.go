package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"equimanage-server/internal/platform/httpclient"
	"equimanage-server/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gotrue client not configured")
	ErrUnauthorized  = errors.New("gotrue unauthorized")
	ErrUpstream      = errors.New("gotrue upstream error")
)

// Config del cliente GoTrue. BaseURL apunta al endpoint /auth/v1 del
// proyecto. La service role key solo hace falta para el directorio de
// usuarios (endpoints admin); para verificar tokens basta la anon key.
type Config struct {
	BaseURL        string
	AnonKey        string
	ServiceRoleKey string

	Timeout time.Duration
}

// Client verifica tokens de usuario y resuelve correos por id.
// Implementa auth.AuthVerifier y auth.Directory.
type Client struct {
	http           *httpclient.Client
	anonKey        string
	serviceRoleKey string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:           hc,
		anonKey:        strings.TrimSpace(cfg.AnonKey),
		serviceRoleKey: strings.TrimSpace(cfg.ServiceRoleKey),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.anonKey != ""
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verify valida el token contra GET /user y devuelve los claims.
func (c *Client) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out userResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/user", map[string]string{
		"apikey":        c.anonKey,
		"Authorization": "Bearer " + token,
	}, nil, &out)
	if err != nil {
		return auth.Claims{}, classify(err)
	}
	if out.ID == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	return auth.Claims{UserID: out.ID, Email: out.Email}, nil
}

// EmailByUserID consulta el endpoint admin de usuarios. Requiere la
// service role key.
func (c *Client) EmailByUserID(ctx context.Context, userID string) (string, error) {
	if !c.IsConfigured() || c.serviceRoleKey == "" {
		return "", ErrNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrUpstream)
	}

	var out userResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/admin/users/"+userID, map[string]string{
		"apikey":        c.serviceRoleKey,
		"Authorization": "Bearer " + c.serviceRoleKey,
	}, nil, &out)
	if err != nil {
		return "", classify(err)
	}
	return out.Email, nil
}

func classify(err error) error {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		switch he.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrUnauthorized
		default:
			return fmt.Errorf("%w: status=%d", ErrUpstream, he.StatusCode)
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
