package typesense

import (
	"context"
	"encoding/json"
	"net/url"
)

// Overrides manages the curation overrides of one collection.
type Overrides struct {
	call       *apiCall
	collection string
}

func (o *Overrides) endpoint(id string) string {
	path := collectionsPath + "/" + url.PathEscape(o.collection) + "/overrides"
	if id != "" {
		path += "/" + url.PathEscape(id)
	}
	return path
}

// Upsert creates or replaces the override with the given ID.
func (o *Overrides) Upsert(ctx context.Context, id string, schema SearchOverrideSchema) (*SearchOverride, error) {
	raw, err := o.call.put(ctx, o.endpoint(id), nil, schema)
	if err != nil {
		return nil, err
	}
	var override SearchOverride
	if err := json.Unmarshal(raw, &override); err != nil {
		return nil, err
	}
	return &override, nil
}

// Retrieve returns all overrides of the collection.
func (o *Overrides) Retrieve(ctx context.Context) (*SearchOverridesResponse, error) {
	raw, err := o.call.get(ctx, o.endpoint(""), nil)
	if err != nil {
		return nil, err
	}
	var response SearchOverridesResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Override addresses one curation override by ID.
type Override struct {
	call       *apiCall
	collection string
	id         string
}

func (o *Override) endpoint() string {
	return collectionsPath + "/" + url.PathEscape(o.collection) + "/overrides/" + url.PathEscape(o.id)
}

// Retrieve fetches the override.
func (o *Override) Retrieve(ctx context.Context) (*SearchOverride, error) {
	raw, err := o.call.get(ctx, o.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var override SearchOverride
	if err := json.Unmarshal(raw, &override); err != nil {
		return nil, err
	}
	return &override, nil
}

// Delete removes the override.
func (o *Override) Delete(ctx context.Context) (*SearchOverride, error) {
	raw, err := o.call.delete(ctx, o.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var override SearchOverride
	if err := json.Unmarshal(raw, &override); err != nil {
		return nil, err
	}
	return &override, nil
}
