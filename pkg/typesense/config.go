package typesense

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const apiKeyHeaderName = "X-TYPESENSE-API-KEY"

// Node is one HTTP endpoint of a Typesense cluster. Immutable after
// configuration load; health bookkeeping lives in the node pool, not here.
type Node struct {
	Host     string
	Port     int
	Path     string
	Protocol string
}

// NodeFromURL parses a node from a URL string, e.g. "https://ts-1.example.com:8108".
func NodeFromURL(raw string) (Node, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return Node{}, fmt.Errorf("%w: node url %q: %s", ErrConfig, raw, err)
	}
	if parsed.Scheme == "" {
		return Node{}, fmt.Errorf("%w: node url %q is missing the protocol", ErrConfig, raw)
	}
	if parsed.Hostname() == "" {
		return Node{}, fmt.Errorf("%w: node url %q is missing the host", ErrConfig, raw)
	}
	if parsed.Port() == "" {
		return Node{}, fmt.Errorf("%w: node url %q is missing the port", ErrConfig, raw)
	}
	port, err := strconv.Atoi(parsed.Port())
	if err != nil {
		return Node{}, fmt.Errorf("%w: node url %q has an invalid port", ErrConfig, raw)
	}
	return Node{
		Host:     parsed.Hostname(),
		Port:     port,
		Path:     parsed.Path,
		Protocol: parsed.Scheme,
	}, nil
}

// URL renders the base URL of the node.
func (n Node) URL() string {
	return fmt.Sprintf("%s://%s:%d%s", n.Protocol, n.Host, n.Port, n.Path)
}

func (n Node) validate() error {
	if n.Host == "" {
		return fmt.Errorf("%w: node is missing the host", ErrConfig)
	}
	if n.Port == 0 {
		return fmt.Errorf("%w: node is missing the port", ErrConfig)
	}
	if n.Protocol == "" {
		return fmt.Errorf("%w: node is missing the protocol", ErrConfig)
	}
	return nil
}

// Config holds the client configuration. It is loaded once at client
// construction and immutable for the client's lifetime.
type Config struct {
	// Nodes lists the cluster endpoints tried in round-robin order.
	Nodes []Node
	// NearestNode, when set, is preferred over round-robin peers as long as
	// it is healthy, e.g. a local load balancer.
	NearestNode *Node
	// APIKey is sent with every request in the X-TYPESENSE-API-KEY header.
	APIKey string
	// ConnectionTimeout bounds a single attempt against one node.
	ConnectionTimeout time.Duration
	// NumRetries is the number of retries after the initial attempt.
	NumRetries int
	// RetryInterval is the pause between attempts.
	RetryInterval time.Duration
	// HealthcheckInterval is the cooldown before a failed node is tried again.
	HealthcheckInterval time.Duration
	// AdditionalHeaders are added to every outgoing request.
	AdditionalHeaders map[string]string
	// CircuitBreaker enables a per-node breaker around attempts. When nil,
	// failed nodes are still probed again via the healthcheck cooldown only.
	CircuitBreaker *gobreaker.Settings
}

const (
	defaultConnectionTimeout   = 3 * time.Second
	defaultNumRetries          = 3
	defaultRetryInterval       = time.Second
	defaultHealthcheckInterval = time.Minute
)

func (c Config) withDefaults() Config {
	if c.ConnectionTimeout <= 0 {
		c.ConnectionTimeout = defaultConnectionTimeout
	}
	if c.NumRetries <= 0 {
		c.NumRetries = defaultNumRetries
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = defaultRetryInterval
	}
	if c.HealthcheckInterval <= 0 {
		c.HealthcheckInterval = defaultHealthcheckInterval
	}
	return c
}

func (c Config) validate() error {
	if len(c.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes configured", ErrConfig)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: api key is not set", ErrConfig)
	}
	for _, node := range c.Nodes {
		if err := node.validate(); err != nil {
			return err
		}
	}
	if c.NearestNode != nil {
		if err := c.NearestNode.validate(); err != nil {
			return err
		}
	}
	return nil
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
