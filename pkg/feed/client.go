package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gridkit/infinigrid/pkg/cache"
	"github.com/gridkit/infinigrid/pkg/errors"
	"github.com/gridkit/infinigrid/pkg/observability"
)

// DefaultCacheTTL is how long fetched pages stay fresh. Page content is
// deterministic, so a generous TTL is safe.
const DefaultCacheTTL = time.Hour

// Client fetches pages from a remote feed server, caching responses and
// retrying transient failures.
type Client struct {
	http   *http.Client
	cache  cache.Cache
	keyer  cache.Keyer
	source string
	ttl    time.Duration
}

// NewClient creates a Client for the feed at source. Pass a NullCache to
// disable caching.
func NewClient(source string, c cache.Cache) (*Client, error) {
	if err := errors.ValidateURL(source); err != nil {
		return nil, err
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:   &http.Client{Timeout: 30 * time.Second},
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		source: source,
		ttl:    DefaultCacheTTL,
	}, nil
}

// Fetch retrieves one page. opts selects the page the same way the server
// query parameters do; refresh bypasses the cache.
func (c *Client) Fetch(ctx context.Context, opts cache.FeedKeyOpts, refresh bool) (*Page, error) {
	key := c.keyer.FeedKey(c.source, opts)

	if !refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			var page Page
			if err := json.Unmarshal(data, &page); err == nil {
				observability.Cache().OnCacheHit(ctx, "feed")
				return &page, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "feed")
	}

	var page Page
	err := cache.RetryWithBackoff(ctx, func() error {
		return c.fetchPage(ctx, opts, &page)
	})
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(page); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, "feed", len(data))
		}
	}
	return &page, nil
}

func (c *Client) fetchPage(ctx context.Context, opts cache.FeedKeyOpts, page *Page) error {
	u, err := url.Parse(c.source)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse source URL")
	}
	u.Path = "/cards"
	q := u.Query()
	if opts.After != "" {
		q.Set("after", opts.After)
	}
	if opts.Before != "" {
		q.Set("before", opts.Before)
	}
	if opts.Count > 0 {
		q.Set("count", fmt.Sprint(opts.Count))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", u.Path))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(page)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "page not found")
	case code >= 500:
		return cache.Retryable(errors.New(errors.ErrCodeNetwork, "server error: status %d", code))
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d", code)
	}
}
