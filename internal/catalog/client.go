package catalog

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/petasbytes/wardrobe-agent/internal/upstream"
)

const op = "catalog"

type Client struct {
	baseURL    string
	fetcher    *upstream.Fetcher
	defaultMax int
	log        zerolog.Logger
}

// NewClient returns a catalog client. defaultMax is used when Search is called
// with a non-positive cap.
func NewClient(baseURL string, f *upstream.Fetcher, defaultMax int, log zerolog.Logger) *Client {
	if defaultMax <= 0 {
		defaultMax = DefaultMaxResults
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		fetcher:    f,
		defaultMax: defaultMax,
		log:        log.With().Str("component", "catalog").Logger(),
	}
}

// Products fetches the full catalog in one request.
func (c *Client) Products(ctx context.Context) ([]Item, error) {
	body, err := c.fetcher.Get(ctx, op, c.baseURL+"/products")
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, upstream.Malformed(op, "decode products", err)
	}
	return items, nil
}

// Search fetches the catalog and returns up to limit matches for query.
func (c *Client) Search(ctx context.Context, query string, limit int) (Result, error) {
	if limit <= 0 {
		limit = c.defaultMax
	}
	items, err := c.Products(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("query", query).Msg("catalog search failed")
		return Result{}, err
	}
	res := Result{Query: query, Products: Filter(items, query, limit)}
	c.log.Info().
		Int("matches", len(res.Products)).
		Int("catalog_size", len(items)).
		Str("query", query).
		Msg("catalog search done")
	return res, nil
}

// DefaultMax is the cap Search applies when none is given.
func (c *Client) DefaultMax() int { return c.defaultMax }
