package typesense

import (
	"net/http"

	"go.uber.org/zap"
)

// Client is the entry point for all Typesense operations. A single instance
// is safe for concurrent use; node health state is shared across all calls
// made through it.
type Client struct {
	l    *zap.Logger
	cfg  Config
	call *apiCall

	collections *Collections
	aliases     *Aliases
	keys        *Keys
	stopwords   *Stopwords
	analytics   *Analytics
	multiSearch *MultiSearch
	operations  *Operations
}

type options struct {
	httpClient *http.Client
	observer   Observer
}

// Option configures optional client behavior.
type Option func(*options)

// WithHTTPClient replaces the underlying HTTP client, e.g. to configure
// TLS or connection pooling. Per-attempt timeouts are still applied through
// the request context.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithObserver registers an Observer for request and node health events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// NewClient validates the configuration and builds a client. The
// configuration is immutable for the client's lifetime.
func NewClient(l *zap.Logger, cfg Config, opts ...Option) (*Client, error) {
	l = loggerOrNop(l)
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	pool := newNodePool(cfg, o.observer)
	call := newAPICall(l, cfg, pool, o.observer, o.httpClient)

	return &Client{
		l:           l,
		cfg:         cfg,
		call:        call,
		collections: &Collections{call: call},
		aliases:     &Aliases{call: call},
		keys:        &Keys{call: call},
		stopwords:   &Stopwords{call: call},
		analytics:   &Analytics{call: call},
		multiSearch: &MultiSearch{call: call},
		operations:  &Operations{call: call},
	}, nil
}

// Collections manages collection-level operations.
func (c *Client) Collections() *Collections {
	return c.collections
}

// Collection addresses one collection by name (or alias).
func (c *Client) Collection(name string) *Collection {
	return &Collection{call: c.call, name: name}
}

// Aliases manages collection aliases.
func (c *Client) Aliases() *Aliases {
	return c.aliases
}

// Alias addresses one alias by name.
func (c *Client) Alias(name string) *Alias {
	return &Alias{call: c.call, name: name}
}

// Keys manages API keys.
func (c *Client) Keys() *Keys {
	return c.keys
}

// Key addresses one API key by ID.
func (c *Client) Key(id int64) *Key {
	return &Key{call: c.call, id: id}
}

// Stopwords manages stopwords sets.
func (c *Client) Stopwords() *Stopwords {
	return c.stopwords
}

// Stopword addresses one stopwords set by ID.
func (c *Client) Stopword(id string) *Stopword {
	return &Stopword{call: c.call, id: id}
}

// Analytics manages analytics rules and events.
func (c *Client) Analytics() *Analytics {
	return c.analytics
}

// MultiSearch sends multiple searches in one request.
func (c *Client) MultiSearch() *MultiSearch {
	return c.multiSearch
}

// Operations exposes cluster management endpoints.
func (c *Client) Operations() *Operations {
	return c.operations
}
