package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DefaultBaseUrl = "https://pokeapi.co/api/v2/"

var ErrNotFound = errors.New("resource not found")

type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d", e.Url, e.StatusCode)
}

type Client struct {
	baseUrl   string
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	sugar     *zap.SugaredLogger
}

type Option func(*Client)

func WithBaseUrl(baseUrl string) Option {
	return func(c *Client) {
		c.baseUrl = strings.TrimRight(baseUrl, "/") + "/"
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithRateLimit spaces requests out to at most perSecond, letting burst through at once.
// A non-positive perSecond disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func NewClient(sugar *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseUrl:   DefaultBaseUrl,
		client:    &http.Client{Timeout: 15 * time.Second},
		userAgent: "pokedex-cli/1.0",
		sugar:     sugar,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

func (c *Client) getAndDecode(ctx context.Context, url string, target any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	c.sugar.Debugf("GET %s", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Url: url, StatusCode: resp.StatusCode}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// ListFirst fetches the first listing page.
func (c *Client) ListFirst(ctx context.Context, limit int32) (*PokemonListResult, error) {
	return c.ListPage(ctx, fmt.Sprintf("%spokemon?limit=%d", c.baseUrl, limit))
}

// List fetches the listing slice starting at offset.
func (c *Client) List(ctx context.Context, limit, offset int32) (*PokemonListResult, error) {
	return c.ListPage(ctx, fmt.Sprintf("%spokemon?limit=%d&offset=%d", c.baseUrl, limit, offset))
}

// ListPage fetches a listing page by its full url, typically a server-supplied next cursor.
func (c *Client) ListPage(ctx context.Context, pageUrl string) (*PokemonListResult, error) {
	var result PokemonListResult
	if err := c.getAndDecode(ctx, pageUrl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Lookup fetches a single Pokémon by numeric id or name.
func (c *Client) Lookup(ctx context.Context, idOrName string) (*PokemonResponse, error) {
	return c.Get(ctx, c.baseUrl+"pokemon/"+url.PathEscape(idOrName))
}

// Get fetches a Pokémon detail by resource url.
func (c *Client) Get(ctx context.Context, resourceUrl string) (*PokemonResponse, error) {
	var pokemon PokemonResponse
	if err := c.getAndDecode(ctx, resourceUrl, &pokemon); err != nil {
		return nil, err
	}
	return &pokemon, nil
}

func (c *Client) GetPokemonGeneration(ctx context.Context, species PokemonResponseSpecies) (int32, error) {
	var pokemonSpecies PokemonSpecies
	if err := c.getAndDecode(ctx, species.Url, &pokemonSpecies); err != nil {
		return 0, err
	}
	var generation PokemonGeneration
	if err := c.getAndDecode(ctx, pokemonSpecies.Generation.Url, &generation); err != nil {
		return 0, err
	}
	return generation.Id, nil
}
