package rimondo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"equimanage-server/internal/ports/registry"
)

var (
	ErrUnsupportedURL = errors.New("rimondo: unsupported url")
	ErrFetchFailed    = errors.New("rimondo: fetch failed")
)

const userAgent = "EquiManage/1.0 (https://equimanage.app)"

// Las fichas de rimondo no tienen API pública: se extraen los campos
// del HTML con patrones tolerantes. Un campo no encontrado queda en
// cero, nunca es error.
var (
	urlPattern    = regexp.MustCompile(`(?i)^https://(www\.)?rimondo\.com/.+`)
	ogTitleRe     = regexp.MustCompile(`(?i)<meta\s+property="og:title"\s+content="([^"]+)"`)
	titleRe       = regexp.MustCompile(`(?i)<title>([^<]+)</title>`)
	titleSuffixRe = regexp.MustCompile(`(?i)\s*\|\s*rimondo.*$`)
	breedRe       = regexp.MustCompile(`(?i)(?:rasse|breed)[:\s]*([^<` + "\n" + `]+)`)
	yearRe        = regexp.MustCompile(`(?i)(?:geburtsjahr|birth\s*year|geb\.|foaled)[:\s]*(\d{4})`)
	stallionRe    = regexp.MustCompile(`(?i)\bhengst\b`)
	mareRe        = regexp.MustCompile(`(?i)\bstute\b`)
	geldingRe     = regexp.MustCompile(`(?i)\bwallach\b`)
	assocRe       = regexp.MustCompile(`(?i)(?:zuchtverband|breeding\s*association|verband)[:\s]*([^<` + "\n" + `]+)`)
)

// Client implementa registry.Fetcher contra rimondo.com.
type Client struct {
	http *http.Client
	now  func() time.Time
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		now:  time.Now,
	}
}

// IsSupportedURL valida que la URL apunte a rimondo.com.
func IsSupportedURL(url string) bool {
	return urlPattern.MatchString(strings.TrimSpace(url))
}

func (c *Client) Fetch(ctx context.Context, url string) (registry.ParsedHorse, error) {
	url = strings.TrimSpace(url)
	if !IsSupportedURL(url) {
		return registry.ParsedHorse{}, ErrUnsupportedURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return registry.ParsedHorse{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return registry.ParsedHorse{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return registry.ParsedHorse{}, fmt.Errorf("%w: status=%d", ErrFetchFailed, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return registry.ParsedHorse{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return c.parse(string(raw)), nil
}

func (c *Client) parse(html string) registry.ParsedHorse {
	var out registry.ParsedHorse

	// Nombre: og:title primero, <title> sin sufijo "| rimondo" como
	// alternativa.
	if m := ogTitleRe.FindStringSubmatch(html); m != nil {
		t := strings.TrimSpace(m[1])
		if t != "" && !strings.HasPrefix(strings.ToLower(t), "rimondo") {
			out.Name = t
		}
	}
	if out.Name == "" {
		if m := titleRe.FindStringSubmatch(html); m != nil {
			t := strings.TrimSpace(titleSuffixRe.ReplaceAllString(m[1], ""))
			if t != "" {
				out.Name = t
			}
		}
	}

	if m := breedRe.FindStringSubmatch(html); m != nil {
		out.Breed = truncate(strings.TrimSpace(m[1]), 80)
	}

	if m := yearRe.FindStringSubmatch(html); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil && y >= 1990 && y <= c.now().Year() {
			out.BirthYear = y
		}
	}

	// "Hengst" aparece también en pedigríes de wallachs; solo cuenta si
	// la página no menciona wallach.
	switch {
	case stallionRe.MatchString(html) && !geldingRe.MatchString(html):
		out.Gender = "Hengst"
	case mareRe.MatchString(html):
		out.Gender = "Stute"
	case geldingRe.MatchString(html):
		out.Gender = "Wallach"
	}

	if m := assocRe.FindStringSubmatch(html); m != nil {
		out.BreedingAssociation = truncate(strings.TrimSpace(m[1]), 120)
	}

	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
