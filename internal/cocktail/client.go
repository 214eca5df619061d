package cocktail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	apiKeyHeader     = "X-Api-Key"
	defaultUserAgent = "cocktails/0.1"
	maxErrorBody     = 512
)

// Searcher is the lookup surface consumed by the search controller and the CLI.
type Searcher interface {
	SearchByName(ctx context.Context, name string) ([]Cocktail, error)
	RandomCocktail(ctx context.Context) ([]Cocktail, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Client talks to the cocktail HTTP API. It is safe for concurrent use.
type Client struct {
	endpoint  *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
	pick      func(n int) int
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets an overall request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithPicker sets the function that chooses an index in [0, n) for random
// lookups. The default is math/rand/v2's IntN.
func WithPicker(pick func(n int) int) Option {
	return func(c *Client) { c.pick = pick }
}

// NewClient builds a Client for the given endpoint and static API key.
func NewClient(endpoint, apiKey string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("cocktail: parse endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("cocktail: endpoint %q must be an absolute URL", endpoint)
	}
	u.Fragment = ""

	c := &Client{
		endpoint:  u,
		apiKey:    apiKey,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		pick:      rand.IntN,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SearchByName returns every cocktail the service matches for name.
// An empty slice means no matches and is not an error.
func (c *Client) SearchByName(ctx context.Context, name string) ([]Cocktail, error) {
	if c == nil {
		return nil, fmt.Errorf("cocktail: client is nil")
	}
	encoded, err := encodeName(name)
	if err != nil {
		return nil, err
	}

	reqURL := *c.endpoint
	if reqURL.RawQuery != "" {
		reqURL.RawQuery += "&"
	}
	reqURL.RawQuery += "name=" + encoded

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("cocktail request failed", "name", name, "error", err, "duration", time.Since(start))
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("cocktail request rejected", "name", name, "status", resp.StatusCode, "duration", time.Since(start))
		return nil, &NetworkError{
			StatusCode: resp.StatusCode,
			Err:        errors.New(statusDetail(resp.StatusCode, body)),
		}
	}

	cocktails, err := decodeCocktails(resp.Body)
	if err != nil {
		c.logger.Debug("cocktail response malformed", "name", name, "error", err)
		return nil, err
	}
	c.logger.Debug("cocktail request", "name", name, "status", resp.StatusCode, "count", len(cocktails), "duration", time.Since(start))
	return cocktails, nil
}

// RandomCocktail looks up one name chosen uniformly from RandomNames.
func (c *Client) RandomCocktail(ctx context.Context) ([]Cocktail, error) {
	if c == nil {
		return nil, fmt.Errorf("cocktail: client is nil")
	}
	return c.SearchByName(ctx, c.RandomName())
}

// RandomName returns one entry of RandomNames.
func (c *Client) RandomName() string {
	return RandomNames[c.pick(len(RandomNames))]
}

// encodeName percent-encodes name for use as a query value. Spaces become
// %20 rather than "+".
func encodeName(name string) (string, error) {
	if name == "" {
		return "", &EncodingError{Name: name, Reason: "name is empty"}
	}
	if !utf8.ValidString(name) {
		return "", &EncodingError{Name: name, Reason: "name is not valid UTF-8"}
	}
	// QueryEscape turns a literal "+" into %2B, so every "+" left is a space.
	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20"), nil
}

// wireCocktail mirrors the response schema. Pointers detect missing fields.
type wireCocktail struct {
	Name         *string   `json:"name"`
	Ingredients  *[]string `json:"ingredients"`
	Instructions *string   `json:"instructions"`
}

// decodeCocktails decodes a JSON array of cocktails. Any malformed element
// fails the whole response.
func decodeCocktails(r io.Reader) ([]Cocktail, error) {
	var raw []wireCocktail
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if raw == nil {
		return nil, &DecodeError{Err: errors.New("expected a JSON array, got null")}
	}

	out := make([]Cocktail, 0, len(raw))
	for i, w := range raw {
		switch {
		case w.Name == nil:
			return nil, &DecodeError{Err: fmt.Errorf("element %d: missing field %q", i, "name")}
		case w.Ingredients == nil:
			return nil, &DecodeError{Err: fmt.Errorf("element %d: missing field %q", i, "ingredients")}
		case w.Instructions == nil:
			return nil, &DecodeError{Err: fmt.Errorf("element %d: missing field %q", i, "instructions")}
		}
		out = append(out, Cocktail{
			Name:         *w.Name,
			Ingredients:  append([]string(nil), (*w.Ingredients)...),
			Instructions: *w.Instructions,
		})
	}
	return out, nil
}

// statusDetail builds a short description of a rejected response. The service
// reports failures as {"error": "..."}; anything else is shown trimmed.
func statusDetail(code int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(code)
}
