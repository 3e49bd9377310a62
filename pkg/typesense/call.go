package typesense

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// apiCall executes one logical API call against the cluster: it asks the
// node pool for a target, performs the HTTP request with the configured
// connection timeout, and on transient failure marks the node unhealthy and
// retries against the next selection until the retry budget is spent.
type apiCall struct {
	l        *zap.Logger
	cfg      Config
	pool     *nodePool
	http     *http.Client
	obs      Observer
	breakers map[string]*gobreaker.CircuitBreaker
}

func newAPICall(l *zap.Logger, cfg Config, pool *nodePool, obs Observer, httpClient *http.Client) *apiCall {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	a := &apiCall{
		l:    l,
		cfg:  cfg,
		pool: pool,
		http: httpClient,
		obs:  obs,
	}
	if cfg.CircuitBreaker != nil {
		a.breakers = make(map[string]*gobreaker.CircuitBreaker, len(cfg.Nodes)+1)
		nodes := cfg.Nodes
		if cfg.NearestNode != nil {
			nodes = append(append([]Node(nil), nodes...), *cfg.NearestNode)
		}
		for _, node := range nodes {
			settings := *cfg.CircuitBreaker
			settings.Name = node.URL()
			a.breakers[node.URL()] = gobreaker.NewCircuitBreaker(settings)
		}
	}
	return a
}

func (a *apiCall) get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	return a.doJSON(ctx, http.MethodGet, endpoint, params, nil)
}

func (a *apiCall) post(ctx context.Context, endpoint string, params url.Values, body any) (json.RawMessage, error) {
	return a.doJSON(ctx, http.MethodPost, endpoint, params, body)
}

func (a *apiCall) put(ctx context.Context, endpoint string, params url.Values, body any) (json.RawMessage, error) {
	return a.doJSON(ctx, http.MethodPut, endpoint, params, body)
}

func (a *apiCall) patch(ctx context.Context, endpoint string, params url.Values, body any) (json.RawMessage, error) {
	return a.doJSON(ctx, http.MethodPatch, endpoint, params, body)
}

func (a *apiCall) delete(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	return a.doJSON(ctx, http.MethodDelete, endpoint, params, nil)
}

// getRaw fetches a non-JSON payload, e.g. a JSONL document export.
func (a *apiCall) getRaw(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	return a.do(ctx, http.MethodGet, endpoint, params, nil, "")
}

// postRaw sends a pre-encoded payload, e.g. a JSONL document import.
func (a *apiCall) postRaw(ctx context.Context, endpoint string, params url.Values, body []byte) ([]byte, error) {
	return a.do(ctx, http.MethodPost, endpoint, params, body, "text/plain")
}

func (a *apiCall) doJSON(ctx context.Context, method, endpoint string, params url.Values, body any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = encoded
	}
	raw, err := a.do(ctx, method, endpoint, params, payload, "application/json")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// do runs the retry loop for one logical call. Each attempt goes against a
// fresh node selection; non-retryable failures abort the loop immediately.
func (a *apiCall) do(ctx context.Context, method, endpoint string, params url.Values, body []byte, contentType string) ([]byte, error) {
	var out []byte
	err := retry.Do(
		func() error {
			node := a.pool.pick()
			responseBody, err := a.attempt(ctx, node, method, endpoint, params, body, contentType)
			if err != nil {
				if !retryable(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			out = responseBody
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(a.cfg.NumRetries)+1),
		retry.Delay(a.cfg.RetryInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			a.obs.OnRetry(method, endpoint, attempt)
			a.l.Debug("Retrying request",
				zap.String("method", method),
				zap.String("endpoint", endpoint),
				zap.Uint("attempt", attempt),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type attemptResult struct {
	status int
	body   []byte
}

// attempt performs a single HTTP call against node and updates its health:
// network failures and 5xx responses mark it unhealthy, any other response
// proves the node reachable and marks it healthy.
func (a *apiCall) attempt(ctx context.Context, node Node, method, endpoint string, params url.Values, body []byte, contentType string) ([]byte, error) {
	start := time.Now()
	res, err := a.roundTrip(ctx, node, method, endpoint, params, body, contentType)
	a.obs.OnRequest(method, endpoint, res.status, time.Since(start))
	if err != nil {
		a.pool.setHealth(node, false)
		a.l.Warn("Request attempt failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("node", node.URL()),
			zap.Error(err),
		)
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	// Any response below 500 proves the node reachable, 4xx included.
	a.pool.setHealth(node, true)

	if res.status < 200 || res.status >= 300 {
		return nil, &APIError{StatusCode: res.status, Message: apiErrorMessage(res.body)}
	}
	return res.body, nil
}

// roundTrip performs the HTTP exchange, optionally guarded by the node's
// circuit breaker. 5xx responses are returned as errors so the breaker
// counts them as failures; 4xx responses keep it closed.
func (a *apiCall) roundTrip(ctx context.Context, node Node, method, endpoint string, params url.Values, body []byte, contentType string) (attemptResult, error) {
	exchange := func() (attemptResult, error) {
		res, err := a.send(ctx, node, method, endpoint, params, body, contentType)
		if err != nil {
			return res, err
		}
		if res.status >= 500 {
			return res, &APIError{StatusCode: res.status, Message: apiErrorMessage(res.body)}
		}
		return res, nil
	}
	if cb := a.breakers[node.URL()]; cb != nil {
		res, err := cb.Execute(func() (any, error) {
			return exchange()
		})
		if result, ok := res.(attemptResult); ok {
			return result, err
		}
		return attemptResult{}, err
	}
	return exchange()
}

func (a *apiCall) send(ctx context.Context, node Node, method, endpoint string, params url.Values, body []byte, contentType string) (attemptResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ConnectionTimeout)
	defer cancel()

	target := node.URL() + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return attemptResult{}, err
	}
	req.Header.Set(apiKeyHeaderName, a.cfg.APIKey)
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range a.cfg.AdditionalHeaders {
		req.Header.Set(key, value)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return attemptResult{}, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return attemptResult{}, err
	}
	return attemptResult{status: resp.StatusCode, body: responseBody}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
