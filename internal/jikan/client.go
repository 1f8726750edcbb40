package jikan

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for portraits
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Jikan v4 endpoint.
	DefaultBaseURL = "https://api.jikan.moe/v4"
	// DefaultPerPage is the number of characters requested per page.
	DefaultPerPage = 20

	defaultTimeout = 15 * time.Second
	maxImageBytes  = 8 << 20
)

// Client is a Jikan API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	perPage    int
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPerPage sets the page size used for listings and searches.
func WithPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// WithRateLimit spaces every request at least every apart. Zero disables it.
func WithRateLimit(every time.Duration) Option {
	return func(c *Client) {
		if every > 0 {
			c.limiter = rate.NewLimiter(rate.Every(every), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client for the API rooted at baseURL.
// An empty baseURL means DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		perPage: DefaultPerPage,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// PerPage returns the configured page size.
func (c *Client) PerPage() int { return c.perPage }

// FetchCharacterPage returns one page of the character listing.
func (c *Client) FetchCharacterPage(ctx context.Context, page int) (*Page, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.perPage))
	q.Set("page", strconv.Itoa(normalizePage(page)))
	return c.fetchPage(ctx, "/characters?"+q.Encode())
}

// SearchCharacters returns one page of characters whose name matches query.
func (c *Client) SearchCharacters(ctx context.Context, query string, page int) (*Page, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.perPage))
	q.Set("page", strconv.Itoa(normalizePage(page)))
	q.Set("q", query)
	return c.fetchPage(ctx, "/characters?"+q.Encode())
}

// FetchCharacterDetail returns the full record for one character, including
// anime, manga and voice appearances.
func (c *Client) FetchCharacterDetail(ctx context.Context, id int) (*Character, error) {
	var env envelope[Character]
	if err := c.getJSON(ctx, fmt.Sprintf("/characters/%d/full", id), &env); err != nil {
		return nil, fmt.Errorf("fetching character %d: %w", id, err)
	}
	return &env.Data, nil
}

// FetchAnimeDetail returns one anime, or nil if it could not be fetched.
// Failures are logged rather than returned.
func (c *Client) FetchAnimeDetail(ctx context.Context, id int) *Anime {
	var env envelope[Anime]
	if err := c.getJSON(ctx, fmt.Sprintf("/anime/%d", id), &env); err != nil {
		c.log.Warn().Err(err).Int("anime_id", id).Msg("anime detail unavailable")
		return nil
	}
	if env.Data.MalID == 0 {
		c.log.Warn().Int("anime_id", id).Msg("anime detail response had no data")
		return nil
	}
	return &env.Data
}

// FetchImage downloads and decodes a jpeg, png or webp image.
func (c *Client) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("empty image url")
	}
	resp, err := c.do(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func (c *Client) fetchPage(ctx context.Context, path string) (*Page, error) {
	var env envelope[[]Character]
	if err := c.getJSON(ctx, path, &env); err != nil {
		return nil, err
	}
	chars := env.Data
	if chars == nil {
		chars = []Character{}
	}
	return &Page{Characters: chars, Pagination: env.Pagination}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, c.baseURL+path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}

// do issues a GET and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, rawURL string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	c.log.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("jikan request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: rawURL}
	}
	return resp, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
