package typesense

import (
	"context"
	"encoding/json"
	"net/url"
)

const (
	analyticsRulesPath  = "/analytics/rules"
	analyticsEventsPath = "/analytics/events"
)

// Analytics manages analytics rules and event ingestion.
type Analytics struct {
	call *apiCall
}

// Rules manages the analytics rules of the cluster.
func (a *Analytics) Rules() *AnalyticsRules {
	return &AnalyticsRules{call: a.call}
}

// Rule addresses one analytics rule by name.
func (a *Analytics) Rule(name string) *AnalyticsRule {
	return &AnalyticsRule{call: a.call, name: name}
}

// Events ingests analytics events.
func (a *Analytics) Events() *AnalyticsEvents {
	return &AnalyticsEvents{call: a.call}
}

// AnalyticsRules manages analytics rules.
type AnalyticsRules struct {
	call *apiCall
}

// Create creates a new analytics rule.
func (r *AnalyticsRules) Create(ctx context.Context, schema AnalyticsRuleSchema) (*AnalyticsRuleSchema, error) {
	raw, err := r.call.post(ctx, analyticsRulesPath, nil, schema)
	if err != nil {
		return nil, err
	}
	return decodeAnalyticsRule(raw)
}

// Upsert creates or replaces the rule with the given name.
func (r *AnalyticsRules) Upsert(ctx context.Context, name string, schema AnalyticsRuleSchema) (*AnalyticsRuleSchema, error) {
	raw, err := r.call.put(ctx, analyticsRulesPath+"/"+url.PathEscape(name), nil, schema)
	if err != nil {
		return nil, err
	}
	return decodeAnalyticsRule(raw)
}

// Retrieve returns all analytics rules.
func (r *AnalyticsRules) Retrieve(ctx context.Context) (*AnalyticsRulesResponse, error) {
	raw, err := r.call.get(ctx, analyticsRulesPath, nil)
	if err != nil {
		return nil, err
	}
	var response AnalyticsRulesResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// AnalyticsRule addresses one analytics rule by name.
type AnalyticsRule struct {
	call *apiCall
	name string
}

func (r *AnalyticsRule) endpoint() string {
	return analyticsRulesPath + "/" + url.PathEscape(r.name)
}

// Retrieve fetches the rule.
func (r *AnalyticsRule) Retrieve(ctx context.Context) (*AnalyticsRuleSchema, error) {
	raw, err := r.call.get(ctx, r.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	return decodeAnalyticsRule(raw)
}

// Delete removes the rule.
func (r *AnalyticsRule) Delete(ctx context.Context) (*AnalyticsRuleDeleteResponse, error) {
	raw, err := r.call.delete(ctx, r.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var response AnalyticsRuleDeleteResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// AnalyticsEvents ingests analytics events.
type AnalyticsEvents struct {
	call *apiCall
}

// Create reports one event, e.g. a click on a search result.
func (e *AnalyticsEvents) Create(ctx context.Context, event AnalyticsEvent) (*AnalyticsEventResponse, error) {
	raw, err := e.call.post(ctx, analyticsEventsPath, nil, event)
	if err != nil {
		return nil, err
	}
	var response AnalyticsEventResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func decodeAnalyticsRule(raw json.RawMessage) (*AnalyticsRuleSchema, error) {
	var rule AnalyticsRuleSchema
	if err := json.Unmarshal(raw, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}
