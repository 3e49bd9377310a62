package typesense

import (
	"context"
	"encoding/json"
	"net/url"
)

const (
	operationsPath = "/operations"
	healthPath     = "/health"
	configPath     = "/config"
	debugPath      = "/debug"
	metricsPath    = "/metrics.json"
	statsPath      = "/stats.json"
)

// Operations exposes cluster management endpoints.
type Operations struct {
	call *apiCall
}

// IsHealthy reports whether the cluster answers its health endpoint with ok.
func (o *Operations) IsHealthy(ctx context.Context) (bool, error) {
	raw, err := o.call.get(ctx, healthPath, nil)
	if err != nil {
		return false, err
	}
	var response HealthResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return false, err
	}
	return response.OK, nil
}

// Snapshot writes a point-in-time snapshot of the server state to the given
// path on the server.
func (o *Operations) Snapshot(ctx context.Context, params SnapshotParams) (*OperationResponse, error) {
	values := url.Values{}
	if params.SnapshotPath != "" {
		values.Set("snapshot_path", params.SnapshotPath)
	}
	return o.perform(ctx, "snapshot", values)
}

// Vote triggers a new leader election.
func (o *Operations) Vote(ctx context.Context) (*OperationResponse, error) {
	return o.perform(ctx, "vote", nil)
}

// CompactDB compacts the on-disk database.
func (o *Operations) CompactDB(ctx context.Context) (*OperationResponse, error) {
	return o.perform(ctx, "db/compact", nil)
}

// ClearCache clears the server-side search result cache.
func (o *Operations) ClearCache(ctx context.Context) (*OperationResponse, error) {
	return o.perform(ctx, "cache/clear", nil)
}

// Perform runs an arbitrary named operation, for endpoints not covered by a
// dedicated method.
func (o *Operations) Perform(ctx context.Context, name string, params url.Values) (*OperationResponse, error) {
	return o.perform(ctx, name, params)
}

func (o *Operations) perform(ctx context.Context, name string, params url.Values) (*OperationResponse, error) {
	raw, err := o.call.post(ctx, operationsPath+"/"+name, params, nil)
	if err != nil {
		return nil, err
	}
	var response OperationResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// ToggleSlowRequestLog configures the slow request log threshold.
func (o *Operations) ToggleSlowRequestLog(ctx context.Context, params SlowRequestLogParams) (*OperationResponse, error) {
	raw, err := o.call.post(ctx, configPath, nil, params)
	if err != nil {
		return nil, err
	}
	var response OperationResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Debug returns the server's debug state and version.
func (o *Operations) Debug(ctx context.Context) (*DebugResponse, error) {
	raw, err := o.call.get(ctx, debugPath, nil)
	if err != nil {
		return nil, err
	}
	var response DebugResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Metrics returns system metrics such as CPU and memory usage.
func (o *Operations) Metrics(ctx context.Context) (MetricsResponse, error) {
	raw, err := o.call.get(ctx, metricsPath, nil)
	if err != nil {
		return nil, err
	}
	var response MetricsResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// Stats returns API usage statistics such as request and latency counters.
func (o *Operations) Stats(ctx context.Context) (StatsResponse, error) {
	raw, err := o.call.get(ctx, statsPath, nil)
	if err != nil {
		return nil, err
	}
	var response StatsResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return response, nil
}
